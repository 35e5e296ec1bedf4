package httpserver

import "time"

type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	// ReadTimeout bounds reading the whole request, multipart uploads included.
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append([]Option{withConfig(cfg)}, opts...)...)
}

func withConfig(cfg Config) Option {
	return func(s *Server) {
		if cfg.Addr != "" {
			s.addr = cfg.Addr
		}
		setPositive(&s.readHeaderTimeout, cfg.ReadHeaderTimeout)
		setPositive(&s.readTimeout, cfg.ReadTimeout)
		setPositive(&s.writeTimeout, cfg.WriteTimeout)
		setPositive(&s.idleTimeout, cfg.IdleTimeout)
		setPositive(&s.shutdownTimeout, cfg.ShutdownTimeout)
	}
}

func setPositive(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
