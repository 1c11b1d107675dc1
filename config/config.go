// koanf based config
package config

import (
	"os"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
)

var Configfile = "./config.toml"

type MainConfig struct {
	General   GeneralConfig   `koanf:"general"`
	Paths     PathsConfig     `koanf:"paths"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
}

type GeneralConfig struct {
	LogLevel           string `koanf:"LogLevel"`
	LogFileSize        int    `koanf:"LogFileSize"`
	LogFileCount       int    `koanf:"LogFileCount"`
	LogCompress        bool   `koanf:"LogCompress"`
	WebPort            string `koanf:"webport"`
	TheMovieDBApiKey   string `koanf:"TheMovieDBApiKey"`
	Tmdblimiterseconds int    `koanf:"tmdblimiterseconds"`
	Tmdblimitercalls   int    `koanf:"tmdblimitercalls"`
	PushoverApiKey     string `koanf:"PushoverApiKey"`
	PushoverRecipient  string `koanf:"PushoverRecipient"`
	UseFileBufferCopy  bool   `koanf:"UseFileBufferCopy"`
	EnableFileWatcher  bool   `koanf:"EnableFileWatcher"`
	FfprobePath        string `koanf:"FfprobePath"`
	MoveLogFile        string `koanf:"MoveLogFile"`
}

type PathsConfig struct {
	WatchPath                 string   `koanf:"watch_path"`
	TvPath                    string   `koanf:"tv_path"`
	MoviesPath                string   `koanf:"movies_path"`
	AllowedVideoExtensions    []string `koanf:"AllowedVideoExtensions"`
	AllowedSubtitleExtensions []string `koanf:"AllowedSubtitleExtensions"`
	MinVideoSize              int      `koanf:"MinVideoSize"`
	CleanupsizeMB             int      `koanf:"cleanupsizeMB"`
}

type SchedulerConfig struct {
	IntervalScanSeconds int    `koanf:"interval_scan_seconds"`
	CronScan            string `koanf:"cron_scan"`
}

// Defaults mirror the classic environment defaults of the sorter.
func defaults() MainConfig {
	return MainConfig{
		General: GeneralConfig{
			LogLevel:           "Info",
			LogFileSize:        5,
			LogFileCount:       1,
			WebPort:            "9090",
			Tmdblimiterseconds: 10,
			Tmdblimitercalls:   10,
			MoveLogFile:        "moved.log",
		},
		Paths: PathsConfig{
			WatchPath:                 "/media/incoming",
			TvPath:                    "/media/TV",
			MoviesPath:                "/media/Movies",
			AllowedVideoExtensions:    []string{".mkv", ".mp4", ".avi", ".mov", ".wmv", ".flv", ".m4v", ".mpg", ".mpeg"},
			AllowedSubtitleExtensions: []string{".srt", ".sub", ".ass", ".ssa", ".vtt", ".idx", ".sup"},
		},
		Scheduler: SchedulerConfig{
			IntervalScanSeconds: 60,
		},
	}
}

// LoadCfg reads the toml config file and fills missing values with
// defaults. A missing file is not an error - defaults are returned.
func LoadCfg(configfile string) (MainConfig, error) {
	cfg := defaults()
	if _, err := os.Stat(configfile); os.IsNotExist(err) {
		return cfg, nil
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(configfile), toml.Parser()); err != nil {
		return cfg, err
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.Scheduler.IntervalScanSeconds <= 0 && cfg.Scheduler.CronScan == "" {
		cfg.Scheduler.IntervalScanSeconds = 60
	}
	return cfg, nil
}
