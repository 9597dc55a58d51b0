package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables overriding the default settings.
const (
	EnvSourceDir     = "PUMLICONS_SOURCE_DIR"
	EnvDistDir       = "PUMLICONS_DIST_DIR"
	EnvConfig        = "PUMLICONS_CONFIG"
	EnvRules         = "PUMLICONS_RULES"
	EnvJava          = "PUMLICONS_JAVA"
	EnvPlantUMLJar   = "PUMLICONS_PLANTUML_JAR"
	EnvRasterizerJar = "PUMLICONS_RASTERIZER_JAR"
	EnvSymbolsFile   = "PUMLICONS_SYMBOLS_FILE"
)

// Settings are the paths and tools of a build.
type Settings struct {
	SourceDir     string
	DistDir       string
	ConfigPath    string
	RulesPath     string
	Java          string
	PlantUMLJar   string
	RasterizerJar string
	SymbolsFile   string
}

// DefaultSettings returns the layout of a repository checkout.
func DefaultSettings() Settings {
	return Settings{
		SourceDir:     "source",
		DistDir:       "dist",
		ConfigPath:    ConfigFileName,
		Java:          "java",
		PlantUMLJar:   "plantuml-mit-1.2023.12.jar",
		RasterizerJar: "batik-1.16/batik-rasterizer-1.16.jar",
		SymbolsFile:   "AWSSymbols.md",
	}
}

// LoadSettings loads envFile (a missing file is not an error) and applies the
// PUMLICONS_* variables over the defaults.
func LoadSettings(envFile string) (Settings, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Settings{}, err
	}
	return SettingsFromEnv(os.LookupEnv), nil
}

// SettingsFromEnv applies the variables found by lookup over the defaults.
func SettingsFromEnv(lookup func(string) (string, bool)) Settings {
	s := DefaultSettings()
	for key, field := range map[string]*string{
		EnvSourceDir:     &s.SourceDir,
		EnvDistDir:       &s.DistDir,
		EnvConfig:        &s.ConfigPath,
		EnvRules:         &s.RulesPath,
		EnvJava:          &s.Java,
		EnvPlantUMLJar:   &s.PlantUMLJar,
		EnvRasterizerJar: &s.RasterizerJar,
		EnvSymbolsFile:   &s.SymbolsFile,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
	return s
}
