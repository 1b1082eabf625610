package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/roboco-io/md-img-uri/internal/asset"
	"github.com/roboco-io/md-img-uri/internal/datauri"
	"github.com/spf13/cobra"
)

var (
	inspectOutput string
	inspectFormat string
	inspectPretty bool
)

// imageInfo is the inspection report for a single image file.
type imageInfo struct {
	Path         string `json:"path"`
	Format       string `json:"format"`
	MIME         string `json:"mime"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Bytes        int    `json:"bytes"`
	Encoding     string `json:"encoding"`
	EncodedBytes int    `json:"encoded_bytes"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "이미지 정보 확인",
	Long: `이미지 파일을 해석하여 형식, 크기, 인코딩 방식과
data URI 변환 후 예상 크기를 표시합니다.

변환 없이 입력만 검사하며, 출력 형식은 JSON 또는 텍스트를 지원합니다.

예시:
  md-img-uri inspect photo.png
  md-img-uri inspect photo.png --format text
  md-img-uri inspect logo.svg -o info.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "json", "출력 형식 (json, text)")
	inspectCmd.Flags().BoolVar(&inspectPretty, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	a, err := asset.Load(args[0])
	if err != nil {
		return err
	}

	info := buildImageInfo(a)

	output, err := formatInfo(info, inspectFormat)
	if err != nil {
		return err
	}

	if inspectOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		if err := os.WriteFile(inspectOutput, []byte(output+"\n"), 0644); err != nil {
			return fmt.Errorf("파일 저장 실패: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "저장 완료: %s\n", inspectOutput)
	}

	return nil
}

func buildImageInfo(a *asset.Asset) imageInfo {
	var payload datauri.Payload
	if a.Format == asset.FormatSVG {
		payload = datauri.EncodeSVG(a.Data)
	} else {
		payload = datauri.EncodeRaster(a.Data, a.Format.MIME())
	}

	return imageInfo{
		Path:         a.Path,
		Format:       a.Format.String(),
		MIME:         a.Format.MIME(),
		Width:        a.Width,
		Height:       a.Height,
		Bytes:        len(a.Data),
		Encoding:     string(payload.Encoding),
		EncodedBytes: len(payload.URI()),
	}
}

func formatInfo(info imageInfo, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if inspectPretty {
			data, err = json.MarshalIndent(info, "", "  ")
		} else {
			data, err = json.Marshal(info)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatInfoAsText(info), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatInfoAsText(info imageInfo) string {
	result := fmt.Sprintf("파일: %s\n", info.Path)
	result += fmt.Sprintf("형식: %s (%s)\n", info.Format, info.MIME)
	if info.Width > 0 || info.Height > 0 {
		result += fmt.Sprintf("크기: %dx%d\n", info.Width, info.Height)
	}
	result += fmt.Sprintf("원본 바이트: %d\n", info.Bytes)
	result += fmt.Sprintf("인코딩: %s\n", info.Encoding)
	result += fmt.Sprintf("data URI 바이트: %d", info.EncodedBytes)
	return result
}
