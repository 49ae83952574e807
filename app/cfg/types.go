package cfg

type Command string

const (
	CommandConvert Command = "convert"
	CommandServe   Command = "serve"
)

type Cfg struct {
	Command Command
	Debug   bool

	// Batch conversion
	Files       []string
	OutputDir   string
	Format      string
	MetaOnly    bool
	Indent      bool
	WorkerCount int

	// HTTP server
	Port         string
	APIAccessKey string
	MaxBodySize  int64

	Version string
}
