package mockstore

import "github.com/timmybird/fogis-reporter/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCredentials sets the only login the server accepts.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		if username != "" {
			s.username = username
			s.password = password
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
