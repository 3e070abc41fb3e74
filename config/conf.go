package config

import (
	"github.com/go-yaml/yaml"
	"log"
	"os"
)

type openAI struct {
	APIKey string `yaml:"key"`
}

type appConfig struct {
	BudgetName      string `yaml:"budget_name"`
	CredentialsPath string `yaml:"credentials_path"`
}

type MasterConfig struct {
	AppConfig              appConfig                 `yaml:"config"`
	OpenAI                 openAI                    `yaml:"openai"`
	CategoryBypassResponse []map[string]CategoryInfo `yaml:"categoryBypass"`
}

type CategoryInfo struct {
	Category string `yaml:"category"`
	Skip     bool   `yaml:"skip,omitempty"`
}

func InitConfig(file string) *MasterConfig {
	init := MasterConfig{}
	init.getConf(file)
	return &init
}
func (c *MasterConfig) getConf(file string) *MasterConfig {

	yamlFile, err := os.ReadFile(file)
	if err != nil {
		log.Printf("yamlFile.Get err   #%v ", err)
	}
	err = yaml.Unmarshal(yamlFile, c)
	if err != nil {
		log.Fatalf("Unmarshal: %v", err)
	}

	return c
}
