package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigServer настройки HTTP сервера
type ConfigServer struct {
	Port                    int `mapstructure:"port"`
	ReadTimeout             int `mapstructure:"read_timeout"`
	WriteTimeout            int `mapstructure:"write_timeout"`
	IdleTimeout             int `mapstructure:"idle_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigHTTP настройки HTTP middleware (CORS, rate limiting)
type ConfigHTTP struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigAuth настройки проверки JWT токенов
type ConfigAuth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ConfigStorage настройки хранилища заметок
// Backend: "memory" или "surreal"
type ConfigStorage struct {
	Backend   string `mapstructure:"backend"`
	Endpoint  string `mapstructure:"endpoint"`
	Namespace string `mapstructure:"namespace"`
	Database  string `mapstructure:"database"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
}

// ConfigRetention настройки корзины и фонового клинера
type ConfigRetention struct {
	// Days - сколько дней заметка хранится в корзине до окончательного удаления
	Days int `mapstructure:"days"`
	// SweepIntervalHours - интервал между запусками клинера
	SweepIntervalHours int `mapstructure:"sweep_interval_hours"`
}

// ConfigExport геометрия страницы и шрифты для PDF экспорта
type ConfigExport struct {
	PageWidth     float64 `mapstructure:"page_width"`
	PageHeight    float64 `mapstructure:"page_height"`
	Margin        float64 `mapstructure:"margin"`
	LineHeight    float64 `mapstructure:"line_height"`
	FontFamily    string  `mapstructure:"font_family"`
	TitleFontSize float64 `mapstructure:"title_font_size"`
	BodyFontSize  float64 `mapstructure:"body_font_size"`
	MetaFontSize  float64 `mapstructure:"meta_font_size"`
}

// Config основная структура конфигурации
type Config struct {
	Logger    *ConfigLogger    `mapstructure:"logger"`
	Server    *ConfigServer    `mapstructure:"server"`
	HTTP      *ConfigHTTP      `mapstructure:"http"`
	Auth      *ConfigAuth      `mapstructure:"auth"`
	Storage   *ConfigStorage   `mapstructure:"storage"`
	Retention *ConfigRetention `mapstructure:"retention"`
	Export    *ConfigExport    `mapstructure:"export"`
}
