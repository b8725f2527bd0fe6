package http

import (
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
)

// Contact DTOs

// ContactRequest carries no binding tags. Missing fields are reported by the
// use case so every caller gets the same message.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (r ContactRequest) ToInput() contactUC.SubmitContactInput {
	return contactUC.SubmitContactInput{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

// Index DTOs

type IndexResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
