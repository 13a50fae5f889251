package cli

import (
	"io"
	"path/filepath"

	"focusflow/internal/logger"
	"focusflow/internal/storage"
)

// AppName names the config directory and single-instance lock.
const AppName = "FocusFlow"

// Root holds the global flags and the terminal commands shared by every
// entrypoint.
type Root struct {
	Debug  bool   `help:"Log at debug level and mirror logs to stderr."`
	Config string `help:"Preferences file path." type:"path" placeholder:"PATH"`

	Run       RunCmd       `cmd:"" help:"Run a focus session in the terminal."`
	Prefs     PrefsCmd     `cmd:"" help:"Manage preferences."`
	Templates TemplatesCmd `cmd:"" help:"List focus templates."`
	Sources   SourcesCmd   `cmd:"" help:"Work with music sources."`
}

// NewContext opens the preference store and logger selected by the flags.
// Logs live in a logs directory next to the preferences file.
func (r *Root) NewContext(out io.Writer) (*Context, error) {
	path := r.Config
	if path == "" {
		defaultPath, err := storage.DefaultPath(AppName)
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	log, err := logger.New(logger.Config{
		Debug: r.Debug,
		Dir:   filepath.Join(filepath.Dir(path), "logs"),
	})
	if err != nil {
		return nil, err
	}

	return &Context{
		Store:  storage.NewYAMLStoreAt(path, log.Component("storage")),
		Logger: log,
		Out:    out,
	}, nil
}

// Close releases the context's resources.
func (c *Context) Close() error {
	return c.Logger.Close()
}
