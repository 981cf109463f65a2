package exception

// Config is loaded with the configuration package. A zero StackDepth keeps
// the default depth of 32 frames.
type Config struct {
	StackDepth uint16 `env:"EXCEPTION_STACK_DEPTH" validate:"omitempty,max=256"`
}
