package export

import (
	"context"
	"errors"
	"fmt"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/spf13/afero"
)

// WkhtmltopdfConverter drives the wkhtmltopdf binary. The input document and
// the output file live in scratch files that are removed on every exit path,
// so a crashed or timed-out engine never leaves partial output behind.
type WkhtmltopdfConverter struct {
	// Binary is the engine executable. Defaults to "wkhtmltopdf".
	Binary string

	// Fs is the scratch filesystem. Defaults to the OS filesystem; the
	// external engine reads and writes real paths.
	Fs afero.Fs
}

func NewWkhtmltopdfConverter(binary string) *WkhtmltopdfConverter {
	if binary == "" {
		binary = "wkhtmltopdf"
	}
	return &WkhtmltopdfConverter{Binary: binary, Fs: afero.NewOsFs()}
}

func (c *WkhtmltopdfConverter) Convert(ctx context.Context, doc string) ([]byte, error) {
	in, err := afero.TempFile(c.Fs, "", "factura-*.html")
	if err != nil {
		return nil, &ConversionError{Op: "create scratch input", Err: err}
	}
	inPath := in.Name()
	defer c.Fs.Remove(inPath)

	if _, err := in.WriteString(doc); err != nil {
		in.Close()
		return nil, &ConversionError{Op: "write scratch input", Err: err}
	}
	if err := in.Close(); err != nil {
		return nil, &ConversionError{Op: "write scratch input", Err: err}
	}

	out, err := afero.TempFile(c.Fs, "", "factura-*.pdf")
	if err != nil {
		return nil, &ConversionError{Op: "create scratch output", Err: err}
	}
	outPath := out.Name()
	out.Close()
	defer c.Fs.Remove(outPath)

	task := execute.ExecTask{
		Command: c.Binary,
		Args: []string{
			"--quiet",
			"--encoding", "utf-8",
			"--print-media-type",
			inPath,
			outPath,
		},
		StreamStdio: false,
	}

	res, err := task.Execute(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ConversionError{Op: c.Binary, Timeout: true, Err: err}
		}
		return nil, &ConversionError{Op: c.Binary, Err: err}
	}
	if res.ExitCode != 0 {
		return nil, &ConversionError{
			Op:  c.Binary,
			Err: fmt.Errorf("exit code %d: %s", res.ExitCode, res.Stderr),
		}
	}

	pdf, err := afero.ReadFile(c.Fs, outPath)
	if err != nil {
		return nil, &ConversionError{Op: "read scratch output", Err: err}
	}
	if len(pdf) == 0 {
		return nil, &ConversionError{Op: c.Binary, Err: errors.New("engine produced empty output")}
	}
	return pdf, nil
}
