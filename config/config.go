package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type RedisConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
	Passwd  string `yaml:"passwd" json:"passwd"`
	DB      int    `yaml:"db" json:"db"`
}

// SemanticConfig configures the vector store used for retrieval.
// Type is "memory" or "qdrant".
type SemanticConfig struct {
	Type       string `yaml:"type" json:"type"`
	URL        string `yaml:"url" json:"url"`
	APIKey     string `yaml:"api_key" json:"api_key"`
	Collection string `yaml:"collection" json:"collection"`
}

// AIConfig configures the OpenAI-compatible API endpoints.
type AIConfig struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	APIKey         string `yaml:"api_key" json:"api_key"`
	ChatModel      string `yaml:"chat_model" json:"chat_model"`
	EmbedModel     string `yaml:"embed_model" json:"embed_model"`
	ImageModel     string `yaml:"image_model" json:"image_model"`
	TimeoutSecs    int    `yaml:"timeout_secs" json:"timeout_secs"`
	PromptTemplate string `yaml:"prompt_template" json:"prompt_template"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Redis    RedisConfig    `yaml:"redis" json:"redis"`
	Semantic SemanticConfig `yaml:"semantic" json:"semantic"`
	AI       AIConfig       `yaml:"ai" json:"ai"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "shopmind",
		Location: "Asia/Shanghai",
		Workdir:  "/var/shopmind",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8700,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "shopmind",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Redis: RedisConfig{
		Enabled: false,
		Addr:    "127.0.0.1:6379",
		DB:      0,
	},
	Semantic: SemanticConfig{
		Type:       "memory",
		URL:        "http://127.0.0.1:6333",
		Collection: "shopmind",
	},
	AI: AIConfig{
		BaseURL:     "https://api.openai.com/v1",
		ChatModel:   "gpt-4o-mini",
		EmbedModel:  "text-embedding-3-small",
		ImageModel:  "dall-e-3",
		TimeoutSecs: 60,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/shopmind/shopmind.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	defaults := *DefaultAppConfig
	appcfg := &defaults
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg := new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err == nil {
				appcfg = cfg
			}
		}
	}

	setEnvValue("SHOPMIND_SYSTEM_WORKDIR", &appcfg.System.Workdir)
	setEnvBoolValue("SHOPMIND_SYSTEM_DEBUG", &appcfg.System.Debug)

	setEnvValue("SHOPMIND_DB_HOST", &appcfg.Database.Host)
	setEnvValue("SHOPMIND_DB_NAME", &appcfg.Database.Name)
	setEnvValue("SHOPMIND_DB_USER", &appcfg.Database.User)
	setEnvValue("SHOPMIND_DB_PWD", &appcfg.Database.Passwd)

	setEnvValue("SHOPMIND_REDIS_ADDR", &appcfg.Redis.Addr)
	setEnvValue("SHOPMIND_REDIS_PWD", &appcfg.Redis.Passwd)

	setEnvValue("SHOPMIND_SEMANTIC_URL", &appcfg.Semantic.URL)
	setEnvValue("SHOPMIND_SEMANTIC_APIKEY", &appcfg.Semantic.APIKey)

	setEnvValue("OPENAI_BASE_URL", &appcfg.AI.BaseURL)
	setEnvValue("OPENAI_API_KEY", &appcfg.AI.APIKey)

	return appcfg
}
