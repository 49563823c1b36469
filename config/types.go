package config

import (
	"time"
)

const MainConfigFileName = "picocraft.json"

type ServerConfig struct {
	FilePath string `json:"-"`

	ListenTo string       `json:"listenTo"`
	Status   StatusConfig `json:"status"`

	IdleTimeout      string `json:"idleTimeout"`
	MaxConnections   int    `json:"maxConnections"`
	BufferSize       int    `json:"bufferSize"`
	MaxFrameLength   int    `json:"maxFrameLength"`
	MaxAddressLength int    `json:"maxAddressLength"`
	EventQueueSize   int    `json:"eventQueueSize"`

	RateLimit    int    `json:"rateLimit"`
	RateCooldown string `json:"rateCooldown"`

	AcceptProxyProtocol bool   `json:"acceptProxyProtocol"`
	UsePrometheus       bool   `json:"enablePrometheus"`
	PrometheusBind      string `json:"prometheusBind"`
	APIBind             string `json:"apiBind"`

	EnableHotSwap bool   `json:"useTableflip"`
	PidFile       string `json:"pidFile"`
	WatchConfig   bool   `json:"watchConfig"`

	Log LogConfig `json:"log"`
}

type StatusConfig struct {
	VersionName        string         `json:"versionName"`
	Protocol           int32          `json:"protocol"`
	MaxPlayers         int            `json:"maxPlayers"`
	OnlinePlayers      int            `json:"onlinePlayers"`
	Sample             []SamplePlayer `json:"sample,omitempty"`
	Description        string         `json:"description"`
	FaviconPath        string         `json:"faviconPath,omitempty"`
	EnforcesSecureChat bool           `json:"enforcesSecureChat"`
}

type SamplePlayer struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		VersionName:   "1.20.1",
		Protocol:      763,
		MaxPlayers:    4,
		OnlinePlayers: 0,
		Description:   "Hello, world!",
	}
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenTo:         ":25565",
		Status:           DefaultStatusConfig(),
		IdleTimeout:      "10s",
		MaxConnections:   4,
		BufferSize:       1024,
		MaxFrameLength:   2097151,
		MaxAddressLength: 255,
		EventQueueSize:   4,

		RateLimit:    0,
		RateCooldown: "1s",

		AcceptProxyProtocol: false,
		UsePrometheus:       false,
		PrometheusBind:      ":9100",
		APIBind:             "127.0.0.1:9099",

		EnableHotSwap: false,
		PidFile:       "/var/run/picocraft.pid",
		WatchConfig:   false,

		Log: DefaultLogConfig(),
	}
}

const defaultIdleTimeout = 10 * time.Second

// WorkerConfig is the parsed part of the config a single session needs.
type WorkerConfig struct {
	IdleTimeout      time.Duration
	MaxFrameLength   int
	MaxAddressLength int
	EventQueueSize   int
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		IdleTimeout:      defaultIdleTimeout,
		MaxFrameLength:   2097151,
		MaxAddressLength: 255,
		EventQueueSize:   4,
	}
}

// NewWorkerConfig expects a config that passed VerifyConfig, values it
// cannot use fall back to their defaults.
func NewWorkerConfig(cfg ServerConfig) WorkerConfig {
	wCfg := DefaultWorkerConfig()
	if d, err := time.ParseDuration(cfg.IdleTimeout); err == nil && d >= 0 {
		wCfg.IdleTimeout = d
	}
	if cfg.MaxFrameLength > 0 {
		wCfg.MaxFrameLength = cfg.MaxFrameLength
	}
	if cfg.MaxAddressLength > 0 {
		wCfg.MaxAddressLength = cfg.MaxAddressLength
	}
	if cfg.EventQueueSize > 0 {
		wCfg.EventQueueSize = cfg.EventQueueSize
	}
	return wCfg
}
