package cmd

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zostay/go-httpmsg/header"

	// decode any charset a filename* parameter might name
	_ "github.com/zostay/go-httpmsg/header/encoding"
)

var dumpCmd = &cobra.Command{
	Use:   "dump header-block",
	Short: "Shows the semantic view of a single header block",
	Args:  cobra.ExactArgs(1),
	Run:   RunDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func RunDump(cmd *cobra.Command, args []string) {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})

	block, err := os.ReadFile(args[0])
	if err != nil {
		panic(err)
	}

	h, err := header.Parse(block, header.Meh)
	if err != nil {
		badStart := &header.BadStartError{}
		if !errors.As(err, &badStart) {
			panic(err)
		}
		log.Warn().Str("junk", string(badStart.BadStart)).Msg("skipped junk before the header")
	}

	log.Info().Int("fields", h.Len()).Strs("names", h.CapitalizedNames()).Msg("parsed")

	if mt, err := h.GetMediaType(); err == nil {
		ev := log.Info().Str("media-type", mt)
		if cs, err := h.GetCharset(); err == nil {
			ev = ev.Str("charset", cs)
		}
		if b, err := h.GetBoundary(); err == nil {
			ev = ev.Str("boundary", b)
		}
		ev.Msg("content-type")
	} else if !errors.Is(err, header.ErrNoSuchField) {
		log.Warn().Err(err).Msg("content-type")
	}

	if f, err := h.GetFilename(); err == nil {
		log.Info().Str("filename", f).Msg("content-disposition")
	} else if !errors.Is(err, header.ErrNoSuchField) && !errors.Is(err, header.ErrNoSuchFieldParameter) {
		log.Warn().Err(err).Msg("content-disposition")
	}

	if cl, err := h.GetContentLength(); err == nil {
		log.Info().Int64("bytes", cl).Msg("content-length")
	} else if !errors.Is(err, header.ErrNoSuchField) {
		log.Warn().Err(err).Msg("content-length")
	}

	if h.Chunked() {
		log.Info().Bool("chunked", true).Msg("transfer-encoding")
	}

	if h.ConnectionClose() || h.ConnectionKeepAlive() {
		log.Info().
			Bool("close", h.ConnectionClose()).
			Bool("keep-alive", h.ConnectionKeepAlive()).
			Msg("connection")
	}

	if specs, err := h.GetRange(); err == nil {
		ss := make([]string, len(specs))
		for i, spec := range specs {
			ss[i] = spec.String()
		}
		log.Info().Strs("specs", ss).Msg("range")
	} else if !errors.Is(err, header.ErrNoSuchField) {
		log.Warn().Err(err).Msg("range")
	}

	if cr, err := h.GetContentRange(); err == nil {
		ev := log.Info().Str("spec", cr.String())
		if n, err := h.RangeLength(); err == nil {
			ev = ev.Int64("length", n)
		}
		ev.Msg("content-range")
	} else if !errors.Is(err, header.ErrNoSuchField) {
		log.Warn().Err(err).Msg("content-range")
	}

	if d, err := h.GetDate(); err == nil {
		log.Info().Time("date", d).Msg("date")
	} else if !errors.Is(err, header.ErrNoSuchField) {
		log.Warn().Err(err).Msg("date")
	}

	if from, err := h.GetFrom(); err == nil {
		log.Info().Str("mailbox", from.String()).Msg("from")
	} else if !errors.Is(err, header.ErrNoSuchField) {
		log.Warn().Err(err).Msg("from")
	}
}
