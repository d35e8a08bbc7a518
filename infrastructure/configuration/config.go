package configuration

import (
	"fmt"
	"os"
	"strconv"

	"trucking-news/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Facebook    Facebook    `json:"facebook"`
	OpenAI      OpenAI      `json:"openAI"`
	Scheduler   Scheduler   `json:"scheduler"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Facebook holds the Graph API app identity used for token exchange.
type Facebook struct {
	AppID        string `json:"appId"`
	AppSecret    string `json:"appSecret"`
	GraphBaseURL string `json:"graphBaseURL"`
}

type OpenAI struct {
	BaseURL string `json:"baseURL"`
	Model   string `json:"model"`
}

// Scheduler controls the background cycle intervals. The renewal threshold
// and check interval are configuration, not constants: the right values
// depend on the token issuer's lifetime policy.
type Scheduler struct {
	RenewalThresholdDays int    `json:"renewalThresholdDays"`
	RenewalCheckSpec     string `json:"renewalCheckSpec"`
	FetchSpec            string `json:"fetchSpec"`
	PostingSpec          string `json:"postingSpec"`
	CleanupSpec          string `json:"cleanupSpec"`
	CleanupAfterDays     int    `json:"cleanupAfterDays"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initFacebook(&C)
	initScheduler(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = "localhost"
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = "trucking_news"
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided.
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initFacebook(C *Config) {
	if C.Facebook.AppID == "" {
		C.Facebook.AppID = os.Getenv("FACEBOOK_APP_ID")
	}
	if C.Facebook.AppSecret == "" {
		C.Facebook.AppSecret = os.Getenv("FACEBOOK_APP_SECRET")
	}
	if C.Facebook.GraphBaseURL == "" {
		C.Facebook.GraphBaseURL = "https://graph.facebook.com/v19.0"
	}
}

func initScheduler(C *Config) {
	if v := os.Getenv("RENEWAL_THRESHOLD_DAYS"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			C.Scheduler.RenewalThresholdDays = d
		}
	}
	if C.Scheduler.RenewalThresholdDays == 0 {
		// Long-lived page tokens last ~60 days; renewing at 50 leaves a
		// 10-day margin.
		C.Scheduler.RenewalThresholdDays = 50
	}
	if C.Scheduler.RenewalCheckSpec == "" {
		C.Scheduler.RenewalCheckSpec = "@every 6h"
	}
	if C.Scheduler.FetchSpec == "" {
		C.Scheduler.FetchSpec = "@every 4h"
	}
	if C.Scheduler.PostingSpec == "" {
		C.Scheduler.PostingSpec = "0 * * * *"
	}
	if C.Scheduler.CleanupSpec == "" {
		C.Scheduler.CleanupSpec = "30 3 * * *"
	}
	if C.Scheduler.CleanupAfterDays == 0 {
		C.Scheduler.CleanupAfterDays = 30
	}
	if C.OpenAI.BaseURL == "" {
		C.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if C.OpenAI.Model == "" {
		C.OpenAI.Model = "gpt-3.5-turbo"
	}
}
