package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ResumeSourceEmbedded = "embedded"
	ResumeSourceFile     = "file"
	ResumeSourceURL      = "url"

	ContactStoreFile     = "file"
	ContactStorePostgres = "postgres"
	ContactStoreMongo    = "mongo"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Resume struct {
		Source   string        `mapstructure:"source"`
		Path     string        `mapstructure:"path"`
		URL      string        `mapstructure:"url"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"resume"`
	Contact struct {
		Store string `mapstructure:"store"`
		Dir   string `mapstructure:"dir"`
	} `mapstructure:"contact"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none are given), then overlays the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, len(paths))
	for i, p := range paths {
		envFiles[i] = strings.TrimRight(p, "/") + "/.env"
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("resume.source", "RESUME_SOURCE")
	v.BindEnv("resume.path", "RESUME_PATH")
	v.BindEnv("resume.url", "RESUME_URL")
	v.BindEnv("resume.cache_ttl", "RESUME_CACHE_TTL")
	v.BindEnv("contact.store", "CONTACT_STORE")
	v.BindEnv("contact.dir", "CONTACT_DIR")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")
	v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8001")
	v.SetDefault("app.env", "development")
	v.SetDefault("resume.source", ResumeSourceEmbedded)
	v.SetDefault("resume.path", "data/resume.json")
	v.SetDefault("resume.cache_ttl", 5*time.Minute)
	v.SetDefault("contact.store", ContactStoreFile)
	v.SetDefault("contact.dir", "data/contacts")
	v.SetDefault("mongo.database", "portfolio_db")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}
