package config

// ==================== 基础配置 ====================

// AppConfig 应用基础配置
type AppConfig struct {
	Env  string `yaml:"env" mapstructure:"env"`
	Name string `yaml:"name" mapstructure:"name"`
}

// LogConfig 日志配置
type LogConfig struct {
	Format       string `yaml:"format" mapstructure:"format"`
	Level        string `yaml:"level" mapstructure:"level"`
	ReportCaller bool   `yaml:"report_caller" mapstructure:"report_caller"`
}

// ==================== 后端访问配置 ====================

// BackendConfig 真实后端访问配置
type BackendConfig struct {
	BaseURL              string `yaml:"base_url" mapstructure:"base_url"`
	RequestTimeoutMillis int    `yaml:"request_timeout_millis" mapstructure:"request_timeout_millis"`
}

// MockConfig 本地 Mock 响应器配置
type MockConfig struct {
	DelayMillis int      `yaml:"delay_millis" mapstructure:"delay_millis"`
	TokenSecret string   `yaml:"token_secret" mapstructure:"token_secret"`
	TokenTTL    Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// ==================== 基础设施配置 ====================

// StorageConfig 会话持久化存储配置
// Driver 可选 memory / file / redis
type StorageConfig struct {
	Driver    string `yaml:"driver" mapstructure:"driver"`
	FilePath  string `yaml:"file_path" mapstructure:"file_path"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Db       int    `yaml:"db" mapstructure:"db"`
}

// ==================== 可观测性配置 ====================

// TracingConfig 分布式追踪配置
type TracingConfig struct {
	Exporter     string            `yaml:"exporter" mapstructure:"exporter"`
	Endpoint     string            `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string            `yaml:"service_name" mapstructure:"service_name"`
	Insecure     bool              `yaml:"insecure" mapstructure:"insecure"`
	SampleRatio  float64           `yaml:"sample_ratio" mapstructure:"sample_ratio"`
	ResourceTags map[string]string `yaml:"resource_tags" mapstructure:"resource_tags"`
}
