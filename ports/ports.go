package ports

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
)

type Logger = *slog.Logger
type FS = afero.Fs
type File = afero.File
type Router = chi.Router
