// lhe encodes images to and decodes images from LHE (.lhe) files.
//
// Usage:
//
//	lhe encode [options] <input> <output.lhe>
//	lhe decode [options] <input.lhe> <output>
//	lhe info <file.lhe> [<file.lhe> ...]
//
// Inputs and outputs other than .lhe may be PNG, JPEG, BMP or JPEG 2000
// (.jp2, .j2k), chosen by extension.
//
// Options:
//
//	-mode <m>      chroma subsampling: 420 (default), 422 or 444
//	-static        use fixed-length null-hop runs instead of dynamic ones
//	-entropy <m>   entropy coder: huffman (default), zlib, zstd or none
//	-threads <n>   worker goroutines (default: all CPUs)
//	-v             print sizes and PSNR
//	-h, --help     print this message
//	--version      print version information
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-lhe/compression"
	"github.com/mrjoshuak/go-lhe/internal/imageio"
	"github.com/mrjoshuak/go-lhe/lhe"
)

const version = "0.1.0"

type options struct {
	command     string
	subsampling lhe.Subsampling
	runMode     lhe.RunMode
	method      compression.Method
	threads     int
	verbose     bool
	inputs      []string
}

func main() {
	if len(os.Args) < 2 {
		usageMessage(os.Stderr, false)
		os.Exit(1)
	}

	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			usageMessage(os.Stdout, true)
			os.Exit(0)
		}
		if arg == "--version" {
			fmt.Printf("lhe (go-lhe) %s\n", version)
			fmt.Println("https://github.com/mrjoshuak/go-lhe")
			os.Exit(0)
		}
	}

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lhe: %v\n", err)
		usageMessage(os.Stderr, false)
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "lhe: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (*options, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command specified")
	}
	opts := &options{
		command:     args[0],
		subsampling: lhe.Subsample420,
		runMode:     lhe.RunDynamic,
		method:      compression.MethodHuffman,
	}
	switch opts.command {
	case "encode", "decode", "info":
	default:
		return nil, fmt.Errorf("unknown command: %s", opts.command)
	}

	i := 1
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-mode":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("-mode requires an argument")
			}
			s, err := lhe.ParseSubsampling(args[i+1])
			if err != nil {
				return nil, err
			}
			opts.subsampling = s
			i += 2
		case "-static":
			opts.runMode = lhe.RunStatic
			i++
		case "-entropy":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("-entropy requires an argument")
			}
			m, err := compression.ParseMethod(args[i+1])
			if err != nil {
				return nil, err
			}
			opts.method = m
			i += 2
		case "-threads":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("-threads requires an argument")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid thread count: %s", args[i+1])
			}
			opts.threads = n
			i += 2
		case "-v":
			opts.verbose = true
			i++
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown option: %s", arg)
			}
			opts.inputs = append(opts.inputs, arg)
			i++
		}
	}

	switch opts.command {
	case "encode", "decode":
		if len(opts.inputs) != 2 {
			return nil, fmt.Errorf("%s takes an input and an output file", opts.command)
		}
	case "info":
		if len(opts.inputs) == 0 {
			return nil, fmt.Errorf("no input files specified")
		}
	}
	return opts, nil
}

func run(opts *options, w io.Writer) error {
	if opts.threads > 0 {
		cfg := lhe.GetParallelConfig()
		cfg.NumWorkers = opts.threads
		lhe.SetParallelConfig(cfg)
	}

	switch opts.command {
	case "encode":
		return encode(opts, w)
	case "decode":
		return decode(opts, w)
	case "info":
		for _, path := range opts.inputs {
			if err := info(path, w); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", opts.command)
}

func encode(opts *options, w io.Writer) error {
	in, out := opts.inputs[0], opts.inputs[1]
	src, err := imageio.Load(in)
	if err != nil {
		return err
	}
	m := lhe.FromImage(src, opts.subsampling)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	o := &lhe.Options{Subsampling: opts.subsampling, RunMode: opts.runMode, Method: opts.method}
	stats, err := lhe.EncodeWithStats(f, m, o)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		return err
	}

	if opts.verbose {
		printStats(w, in, out, m, stats)
	}
	return nil
}

func printStats(w io.Writer, in, out string, m *lhe.YUVImage, s *lhe.Stats) {
	h := s.Header
	total := lhe.HeaderSize + h.LumaLen + s.ChromaLen
	fmt.Fprintf(w, "%s -> %s\n", in, out)
	fmt.Fprintf(w, "  size:        %dx%d %s\n", h.Width, h.Height, h.Subsampling)
	fmt.Fprintf(w, "  variant:     %s\n", h.Variant)
	fmt.Fprintf(w, "  symbols:     Y %d, Cb %d, Cr %d\n", s.Symbols[0], s.Symbols[1], s.Symbols[2])
	fmt.Fprintf(w, "  luminance:   %d bytes\n", h.LumaLen)
	fmt.Fprintf(w, "  chrominance: %d bytes\n", s.ChromaLen)
	fmt.Fprintf(w, "  total:       %d bytes (%.3f bpp)\n", total, float64(total*8)/float64(h.Width*h.Height))
	fmt.Fprintf(w, "  PSNR Y:      %s\n", formatPSNR(lhe.PSNR(m.Y.Pix, s.Recon.Y.Pix)))
	if !m.Cb.Empty() {
		fmt.Fprintf(w, "  PSNR Cb:     %s\n", formatPSNR(lhe.PSNR(m.Cb.Pix, s.Recon.Cb.Pix)))
		fmt.Fprintf(w, "  PSNR Cr:     %s\n", formatPSNR(lhe.PSNR(m.Cr.Pix, s.Recon.Cr.Pix)))
	}
}

func formatPSNR(p float64) string {
	if math.IsInf(p, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f dB", p)
}

func decode(opts *options, w io.Writer) error {
	in, out := opts.inputs[0], opts.inputs[1]
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := lhe.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := imageio.Save(out, m.RGBA()); err != nil {
		return err
	}
	if opts.verbose {
		fmt.Fprintf(w, "%s -> %s (%dx%d %s)\n", in, out, m.Width(), m.Height(), m.Subsampling)
	}
	return nil
}

func info(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := lhe.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	chroma := fi.Size() - lhe.HeaderSize - int64(h.LumaLen)

	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  size:        %dx%d\n", h.Width, h.Height)
	fmt.Fprintf(w, "  subsampling: %s\n", h.Subsampling)
	fmt.Fprintf(w, "  run mode:    %s\n", h.Variant.RunMode())
	fmt.Fprintf(w, "  entropy:     %s\n", h.Variant.Method())
	fmt.Fprintf(w, "  seeds:       Y %d, Cb %d, Cr %d\n", h.SeedY, h.SeedCb, h.SeedCr)
	fmt.Fprintf(w, "  luminance:   %d bytes\n", h.LumaLen)
	fmt.Fprintf(w, "  chrominance: %d bytes\n", chroma)
	return nil
}

func usageMessage(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  lhe encode [options] <input> <output.lhe>\n")
	fmt.Fprintf(w, "  lhe decode [options] <input.lhe> <output>\n")
	fmt.Fprintf(w, "  lhe info <file.lhe> [<file.lhe> ...]\n\n")

	if verbose {
		fmt.Fprintln(w, "Images may be PNG, JPEG, BMP or JPEG 2000 (.jp2, .j2k).")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Options:")
		fmt.Fprintln(w, "  -mode <m>      chroma subsampling: 420 (default), 422 or 444")
		fmt.Fprintln(w, "  -static        fixed-length null-hop runs (default dynamic)")
		fmt.Fprintln(w, "  -entropy <m>   entropy coder: huffman (default), zlib, zstd or none")
		fmt.Fprintln(w, "  -threads <n>   worker goroutines (default: all CPUs)")
		fmt.Fprintln(w, "  -v             print sizes and PSNR")
		fmt.Fprintln(w, "  -h, --help     print this message")
		fmt.Fprintln(w, "      --version  print version information")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Examples:")
		fmt.Fprintln(w, "  lhe encode -mode 444 -v photo.png photo.lhe")
		fmt.Fprintln(w, "  lhe decode photo.lhe photo.bmp")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Report bugs via https://github.com/mrjoshuak/go-lhe/issues")
	}
}
