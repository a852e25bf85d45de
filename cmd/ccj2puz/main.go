// Package main provides the ccj2puz command line interface.
//
// ccj2puz reads a CCJ crossword from a file or standard input and writes
// it out in a simplified AcrossLite .puz format. The output omits
// checksums, so strict loaders will reject it; it loads fine in xword.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/xwordtools/ccj2puz/ccj"
)

// datePattern validates the -d option; the date itself stays an opaque
// display string.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

func printUsage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stderr, "Usage: %s [options] [input.ccj]\n", prog)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Reads a CCJ crossword from input.ccj, or from standard input when no")
	fmt.Fprintln(os.Stderr, "file is named, and converts it to a checksum-free .PUZ format.")
	fmt.Fprintln(os.Stderr, "Without -o the puzzle is decoded and summarized but nothing is written.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintf(os.Stderr, "  %s -o monday.puz monday.ccj\n", prog)
	fmt.Fprintf(os.Stderr, "  %s -d 2013-12-05 -o out.puz < puzzle.ccj\n", prog)
}

// readInput slurps the whole CCJ buffer before decoding starts.
func readInput(inputPath string) ([]byte, error) {
	if inputPath == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(inputPath)
}

func doConvert(inputPath, outputPath string, opts *ccj.DecodeOptions) int {
	inputData, err := readInput(inputPath)
	if err != nil {
		if inputPath == "" {
			fmt.Fprintln(os.Stderr, "Error: Cannot read standard input")
		} else {
			fmt.Fprintf(os.Stderr, "Error: Cannot open input file: %s\n", inputPath)
		}
		return 1
	}

	if len(inputData) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Input is empty")
		return 1
	}

	puzzle, err := ccj.Decode(inputData, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Decoding failed: %v\n", err)
		return 1
	}

	if outputPath == "" {
		fmt.Printf("Decoded:   %dx%d grid, %d across / %d down clues\n",
			puzzle.Width, puzzle.Height,
			len(puzzle.AcrossClues.Clues), len(puzzle.DownClues.Clues))
		fmt.Printf("Title:     %s\n", puzzle.Title)
		return 0
	}

	outputData, err := puzzle.EncodePUZ()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Encoding failed: %v\n", err)
		return 1
	}

	err = os.WriteFile(outputPath, outputData, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot write output file: %s\n", outputPath)
		return 1
	}

	fmt.Printf("Input:     %s (%d bytes)\n", inputName(inputPath), len(inputData))
	fmt.Printf("Output:    %s (%d bytes)\n", outputPath, len(outputData))
	fmt.Printf("Puzzle:    %dx%d grid, %d across / %d down clues\n",
		puzzle.Width, puzzle.Height,
		len(puzzle.AcrossClues.Clues), len(puzzle.DownClues.Clues))
	fmt.Printf("Title:     %s\n", puzzle.Title)

	return 0
}

func inputName(inputPath string) string {
	if inputPath == "" {
		return "(stdin)"
	}
	return inputPath
}

func main() {
	output := flag.String("o", "", "output `file` in a checksum-free .PUZ format")
	title := flag.String("t", "", "crossword `title`")
	author := flag.String("a", "", "crossword `author` or setter")
	number := flag.String("n", "", "puzzle `number`")
	copyrightMsg := flag.String("c", "", "copyright `message`")
	date := flag.String("d", "", "`date` of this crossword, YYYY-MM-DD")
	verbose := flag.Bool("v", false, "verbose output on stderr")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: At most one input file may be named")
		printUsage()
		os.Exit(1)
	}

	if *date != "" && !datePattern.MatchString(*date) {
		fmt.Fprintln(os.Stderr, "Error: Unknown date format, must be YYYY-MM-DD")
		os.Exit(1)
	}

	opts := &ccj.DecodeOptions{
		Title:        *title,
		Author:       *author,
		PuzzleNumber: *number,
		Copyright:    *copyrightMsg,
		Date:         *date,
	}
	if *verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	os.Exit(doConvert(flag.Arg(0), *output, opts))
}
