package cli

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PromptLine prints prompt to stdout and reads a single line from stdin,
// used by CheckForUpdates to confirm before replacing the running binary.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadImage reads and decodes path using the standard library's registered
// PNG/JPEG/GIF decoders.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ResolveOutputPath computes the default output path for inputPath when
// the user did not pass one explicitly: "<stem>-bgone.png" alongside the
// input, de-duplicated with "-1", "-2", ... suffixes until an unused name
// is found.
func ResolveOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	candidate := filepath.Join(dir, stem+"-bgone.png")
	if !exists(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		candidate = filepath.Join(dir, stem+"-bgone-"+strconv.Itoa(i)+".png")
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetImageInfo returns a short human-readable summary of img, printed
// before processing in verbose mode.
func GetImageInfo(img image.Image) string {
	b := img.Bounds()
	return fmt.Sprintf("%dx%d pixels", b.Dx(), b.Dy())
}
