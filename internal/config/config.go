package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_READ_TIMEOUT" default:"10"`
}

type Client struct {
	Timeout int `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"15"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	DbType   int    `envconfig:"REDIS_DB_TYPE" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME" default:"10"`
}

type Config struct {
	OpenWeatherMapAPIKey string `envconfig:"OPEN_WEATHER_MAP_API_KEY" required:"true"`
	OpenWeatherMapURL    string `envconfig:"OPEN_WEATHER_MAP_URL" default:"https://api.openweathermap.org/data/2.5/weather"`

	Server  Server
	Client  Client
	Breaker Breaker
	Redis   Redis

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-lookup-api.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/provider-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}
