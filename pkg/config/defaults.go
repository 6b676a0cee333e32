package config

// ==================== BackendConfig 默认值 ====================

// ApplyDefaults 应用后端访问配置默认值
func (b *BackendConfig) ApplyDefaults() {
	if b.BaseURL == "" {
		b.BaseURL = "https://api.book.local"
	}
	if b.RequestTimeoutMillis <= 0 {
		b.RequestTimeoutMillis = 5000
	}
}

// ==================== MockConfig 默认值 ====================

// ApplyDefaults 应用 Mock 配置默认值
func (m *MockConfig) ApplyDefaults() {
	if m.DelayMillis <= 0 {
		m.DelayMillis = 600
	}
	if m.TokenTTL <= 0 {
		m.TokenTTL = Duration(7 * 24 * 3600)
	}
}

// ==================== StorageConfig 默认值 ====================

// ApplyDefaults 应用存储配置默认值
func (s *StorageConfig) ApplyDefaults() {
	if s.Driver == "" {
		s.Driver = "memory"
	}
	if s.FilePath == "" {
		s.FilePath = "./data/session.json"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "reserve:"
	}
}

// ==================== TracingConfig 默认值 ====================

// ApplyDefaults 应用 Tracing 配置默认值
// 追踪默认关闭，需要时显式配置 exporter（stdout / otlp-grpc）
func (t *TracingConfig) ApplyDefaults() {
	if t.Exporter == "" {
		t.Exporter = "disabled"
	}
	if t.SampleRatio <= 0 {
		t.SampleRatio = 1.0
	}
}
