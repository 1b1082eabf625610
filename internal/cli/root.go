// Package cli implements the md-img-uri command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/roboco-io/md-img-uri/internal/asset"
	"github.com/roboco-io/md-img-uri/internal/config"
	"github.com/roboco-io/md-img-uri/internal/datauri"
	"github.com/roboco-io/md-img-uri/internal/describe"
	"github.com/roboco-io/md-img-uri/internal/scale"
	"github.com/spf13/cobra"
)

// ErrInvalidOption marks flag values outside their allowed range.
var ErrInvalidOption = errors.New("invalid option")

var version = "dev"

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var (
	rootAlt      string
	rootMaxWidth int
	rootWrap     int
	rootOutput   string
	rootDescribe bool
	rootProvider string
	rootModel    string
	rootVerbose  bool
	rootQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "md-img-uri <file>",
	Short: "이미지를 data URI로 임베드한 Markdown 이미지 라인 생성",
	Long: `이미지 파일(PNG, JPEG, GIF, SVG)을 data URI가 임베드된
Markdown 이미지 라인으로 변환합니다.

래스터 이미지는 base64로, SVG는 percent 인코딩으로 변환됩니다.
--max-width로 비율을 유지하며 축소할 수 있고, 업스케일은 항상
거부됩니다(경고 출력 후 원본 크기 유지).
--wrap은 base64 출력을 고정 폭으로 줄바꿈합니다. 값을 생략하면 80이며
--wrap=WIDTH 형식으로 지정합니다 (최소 40, SVG에는 적용되지 않음).

환경 변수:
  MDIMG_DESCRIBE=true   LLM 대체 텍스트 생성 활성화
  MDIMG_PROVIDER=xxx    LLM 프로바이더 (anthropic, openai, gemini, ollama)
  MDIMG_MODEL=xxx       모델 이름 (프로바이더 자동 감지)

예시:
  md-img-uri photo.png
  md-img-uri photo.png --max-width 500 --wrap
  md-img-uri photo.jpg --alt "제품 사진" -o embed.md
  md-img-uri logo.svg
  md-img-uri photo.png --describe --provider anthropic`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "md-img-uri %s\n", version)
	},
}

func init() {
	rootCmd.Flags().StringVar(&rootAlt, "alt", "", "대체 텍스트 (기본: 확장자를 제외한 파일명)")
	rootCmd.Flags().IntVar(&rootMaxWidth, "max-width", 0, "최대 가로 크기(px)로 축소 (비율 유지, 업스케일 거부)")
	rootCmd.Flags().IntVar(&rootWrap, "wrap", 0, "base64 출력을 지정한 문자 폭으로 줄바꿈 (생략 시 80, 최소 40)")
	rootCmd.Flags().Lookup("wrap").NoOptDefVal = "80"
	rootCmd.Flags().StringVarP(&rootOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	rootCmd.Flags().BoolVar(&rootDescribe, "describe", false, "LLM으로 대체 텍스트 생성")
	rootCmd.Flags().StringVar(&rootProvider, "provider", "", "LLM 프로바이더 (anthropic, openai, gemini, ollama)")
	rootCmd.Flags().StringVar(&rootModel, "model", "", "LLM 모델 이름")
	rootCmd.Flags().BoolVarP(&rootVerbose, "verbose", "v", false, "상세 출력")
	rootCmd.Flags().BoolVarP(&rootQuiet, "quiet", "q", false, "조용한 모드")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if cmd.Flags().Changed("max-width") && rootMaxWidth <= 0 {
		return fmt.Errorf("%w: --max-width must be positive (got %d)", ErrInvalidOption, rootMaxWidth)
	}
	wrapSet := cmd.Flags().Changed("wrap")
	if wrapSet && rootWrap < 40 {
		return fmt.Errorf("%w: --wrap width must be at least 40 (got %d)", ErrInvalidOption, rootWrap)
	}

	a, err := asset.Load(inputPath)
	if err != nil {
		return err
	}

	if !rootQuiet && rootVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "입력 파일: %s\n", a.Path)
		fmt.Fprintf(cmd.ErrOrStderr(), "파일 형식: %s\n", a.Format)
		if a.Width > 0 || a.Height > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "원본 크기: %dx%d\n", a.Width, a.Height)
		}
	}

	cfg := loadConfig(cmd)

	data := a.Data
	if rootMaxWidth > 0 {
		result, err := scaleAsset(a, rootMaxWidth, cfg)
		if err != nil {
			return err
		}
		if result.Refused {
			if !rootQuiet {
				warnUpscale(cmd, a, rootMaxWidth)
			}
		} else {
			data = result.Data
			if !rootQuiet && rootVerbose && result.Width > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "크기 조정: %dx%d\n", result.Width, result.Height)
			}
		}
	}

	alt, err := resolveAlt(cmd, a, data, cfg)
	if err != nil {
		return err
	}

	var payload datauri.Payload
	if a.Format == asset.FormatSVG {
		payload = datauri.EncodeSVG(data)
	} else {
		payload = datauri.EncodeRaster(data, a.Format.MIME())
		if wrapSet {
			payload.Data = datauri.Wrap(payload.Data, rootWrap)
		}
	}

	line := datauri.Markdown(alt, payload.URI())

	if rootOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	} else {
		if err := os.WriteFile(rootOutput, []byte(line+"\n"), 0644); err != nil {
			return fmt.Errorf("파일 저장 실패: %w", err)
		}
		if !rootQuiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "저장 완료: %s\n", rootOutput)
		}
	}

	return nil
}

// loadConfig loads the user configuration, falling back to defaults when
// no file exists or the file cannot be read.
func loadConfig(cmd *cobra.Command) *config.Config {
	loader, err := config.NewLoader()
	if err == nil {
		cfg, lerr := loader.Load()
		if lerr == nil {
			return cfg
		}
		err = lerr
	}
	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load config, using defaults: %v\n", err)
	}
	return config.DefaultConfig()
}

func scaleAsset(a *asset.Asset, maxWidth int, cfg *config.Config) (*scale.Result, error) {
	if a.Format == asset.FormatSVG {
		return scale.SVG(a, maxWidth)
	}

	opts := scale.DefaultOptions()
	if cfg.Encode.JPEGQuality > 0 {
		opts.JPEGQuality = cfg.Encode.JPEGQuality
	}
	if cfg.Encode.Filter != "" {
		filter, err := scale.ParseFilter(cfg.Encode.Filter)
		if err != nil {
			return nil, err
		}
		opts.Filter = filter
	}
	return scale.Raster(a, maxWidth, opts)
}

func warnUpscale(cmd *cobra.Command, a *asset.Asset, maxWidth int) {
	kind := "Image"
	if a.Format == asset.FormatSVG {
		kind = "SVG"
	}
	fmt.Fprintf(cmd.ErrOrStderr(),
		"Warning: %s is %dpx wide but --max-width is %dpx. Keeping original size to avoid upscaling.\n",
		kind, a.Width, maxWidth)
}

// resolveAlt determines the alt text: the --alt flag wins (an explicit
// empty value is kept for decorative images), then LLM description when
// enabled, then the file name stem.
func resolveAlt(cmd *cobra.Command, a *asset.Asset, data []byte, cfg *config.Config) (string, error) {
	if cmd.Flags().Changed("alt") {
		return rootAlt, nil
	}

	useDescribe := rootDescribe || config.GetEnvBool("MDIMG_DESCRIBE")
	if !useDescribe {
		return a.Stem(), nil
	}

	if a.Format == asset.FormatSVG {
		if !rootQuiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: --describe supports raster images only. Using the file name as alt text.")
		}
		return a.Stem(), nil
	}

	alt, err := describeAlt(cmd, a, data, cfg)
	if err != nil {
		return "", fmt.Errorf("대체 텍스트 생성 실패: %w", err)
	}
	return alt, nil
}

func describeAlt(cmd *cobra.Command, a *asset.Asset, data []byte, cfg *config.Config) (string, error) {
	name := rootProvider
	if name == "" {
		name = config.GetEnvOrDefault("MDIMG_PROVIDER", "")
	}
	model := rootModel
	if model == "" {
		model = config.GetEnvOrDefault("MDIMG_MODEL", "")
	}
	if name == "" {
		if model != "" {
			name = detectProviderFromModel(model)
		} else {
			name = cfg.DefaultProvider
		}
	}

	p, err := resolveProvider(name, cfg, model)
	if err != nil {
		return "", err
	}

	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "대체 텍스트 생성 중... (프로바이더: %s)\n", p.Name())
	}

	opts := describe.DefaultOptions()
	opts.Model = model
	if cfg.Describe.Language != "" {
		opts.Language = cfg.Describe.Language
	}
	if cfg.Describe.Temperature > 0 {
		opts.Temperature = cfg.Describe.Temperature
	}
	if cfg.Describe.Prompt != "" {
		opts.Prompt = cfg.Describe.Prompt
	}
	if pcfg, ok := cfg.GetProvider(name); ok && pcfg.MaxTokens > 0 {
		opts.MaxTokens = pcfg.MaxTokens
	}

	res, err := p.Describe(cmd.Context(), describe.Request{Data: data, MIME: a.Format.MIME()}, opts)
	if err != nil {
		return "", err
	}

	if !rootQuiet && rootVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "토큰 사용량: 입력 %d, 출력 %d (모델: %s)\n",
			res.Usage.InputTokens, res.Usage.OutputTokens, res.Model)
	}

	alt := describe.SanitizeAlt(res.AltText)
	if alt == "" {
		return a.Stem(), nil
	}
	return alt, nil
}

// resolveProvider returns a cached provider or constructs and registers
// a new one.
func resolveProvider(name string, cfg *config.Config, model string) (describe.Provider, error) {
	if p, err := describe.Get(name); err == nil {
		return p, nil
	}

	p, err := newProvider(name, cfg, model)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := describe.Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

func newProvider(name string, cfg *config.Config, model string) (describe.Provider, error) {
	pcfg, ok := cfg.GetProvider(name)
	if !ok {
		// Not in the config file; constructors fall back to env vars.
		pcfg = &config.Provider{}
	}
	if model == "" {
		model = pcfg.Model
	}

	switch name {
	case describe.AnthropicProviderName:
		return describe.NewAnthropic(describe.AnthropicConfig{APIKey: pcfg.APIKey, Model: model})
	case describe.OpenAIProviderName:
		return describe.NewOpenAI(describe.OpenAIConfig{APIKey: pcfg.APIKey, Model: model})
	case describe.GeminiProviderName:
		return describe.NewGemini(describe.GeminiConfig{APIKey: pcfg.APIKey, Model: model})
	case describe.OllamaProviderName:
		return describe.NewOllama(describe.OllamaConfig{Host: pcfg.Endpoint, Model: model})
	default:
		return nil, fmt.Errorf("지원하지 않는 프로바이더: %s (지원: %s)", name, strings.Join(describe.ProviderNames(), ", "))
	}
}

// detectProviderFromModel guesses the provider from a model name prefix.
// Unknown models fall through to Ollama, which serves arbitrary local models.
func detectProviderFromModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case m == "":
		return "anthropic"
	case strings.HasPrefix(m, "claude"):
		return "anthropic"
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"):
		return "openai"
	case strings.HasPrefix(m, "gemini"):
		return "gemini"
	default:
		return "ollama"
	}
}
