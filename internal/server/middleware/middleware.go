package middleware

// Logger is the minimal logging surface the middleware needs; the ct-go
// logger satisfies it.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}
