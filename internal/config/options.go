package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	apperrors "audio-transcriber/internal/app/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Options holds everything the transcription run is configured with.
type Options struct {
	Paths       []string `validate:"-"`
	Model       string   `validate:"required,oneof=tiny base small medium large"`
	Language    string   `validate:"omitempty,max=32,language"`
	OutputPath  string   `validate:"-"`
	Backend     string   `validate:"omitempty,oneof=whisper_cpp openai whisper_server"`
	ConfigPath  string   `validate:"omitempty,file"`
	HistoryPath string   `validate:"-"`
	MetricsPath string   `validate:"-"`
	Verbose     bool
	Progress    bool
}

// DefaultOptions returns options with CLI defaults applied.
func DefaultOptions() Options {
	return Options{
		Paths:    []string{"."},
		Model:    DefaultModel,
		Language: DefaultLanguage,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// codes (pl) and full names (portuguese, haitian creole) are both accepted by whisper
	v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if strings.TrimSpace(value) == "" {
			return false
		}
		for _, r := range value {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	})
	return v
}

// Validate checks option values, returning an error wrapping ErrInvalidOptions.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidOptions, describeFieldError(fieldErrs[0]))
	}
	return fmt.Errorf("%w: %v", apperrors.ErrInvalidOptions, err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Model":
		return fmt.Sprintf("invalid model %q: must be one of %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "Backend":
		return fmt.Sprintf("invalid backend %q: must be one of %s", fe.Value(), strings.Join(Backends, ", "))
	case "Language":
		return fmt.Sprintf("invalid language %q: expected a language code or name such as pl or polish", fe.Value())
	case "ConfigPath":
		return fmt.Sprintf("config file not found: %v", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func isKnownBackend(name string) bool {
	return lo.Contains(Backends, name)
}

// ResolveBackend picks the backend: the flag, then TRANSCRIBE_BACKEND, then the
// config file default, then DefaultBackend.
func ResolveBackend(opts Options, file *ProvidersConfig) (string, error) {
	candidates := []string{opts.Backend, getEnv(EnvTranscribeBackend)}
	if file != nil {
		candidates = append(candidates, file.DefaultProvider)
	}

	backend, _ := lo.Find(candidates, func(c string) bool { return c != "" })
	if backend == "" {
		backend = DefaultBackend
	}
	if !isKnownBackend(backend) {
		return "", fmt.Errorf("%w: invalid backend %q: must be one of %s",
			apperrors.ErrInvalidOptions, backend, strings.Join(Backends, ", "))
	}
	if file != nil {
		if p, ok := file.Providers[backend]; ok && !p.IsEnabled() {
			return "", fmt.Errorf("%w: backend %q is disabled in the config file", apperrors.ErrInvalidConfig, backend)
		}
	}
	return backend, nil
}

// BackendSettings layers defaults, environment and file settings for backend,
// then applies the model and language options which always win.
func BackendSettings(backend string, opts Options, file *ProvidersConfig) map[string]interface{} {
	settings := GetProviderDefaults(backend)
	for _, layer := range []map[string]interface{}{EnvSettings(backend), file.Settings(backend)} {
		for k, v := range layer {
			settings[k] = v
		}
	}
	settings["model"] = opts.Model
	settings["language"] = opts.Language
	return settings
}
