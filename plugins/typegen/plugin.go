// Package typegen はタイプレジストリから Rust の型宣言ファイルを生成する。
//
// レジストリ内の複合型と列挙型ごとに、SCALE codec の derive が付いた
// struct または enum を生成し、型のパスに従って pub mod のツリーに配置する。
// 生成されたファイルの先頭には生成物であることを示すヘッダが付く。
package typegen

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Yamashou/scalegen/codegen"
	"github.com/Yamashou/scalegen/config"
	"github.com/Yamashou/scalegen/metadata"
)

// Plugin は設定に従ってレジストリの型宣言を出力ファイルに書き出す。
type Plugin struct {
	cfg      *config.Config
	registry *metadata.Registry
	logger   *zap.Logger
}

// New は新しい typegen プラグインインスタンスを作成する。
//
// パラメータ:
//   - cfg: scalegen の設定
//   - registry: 読み込み済みのタイプレジストリ
//   - logger: 生成の進捗を出力するロガー
func New(cfg *config.Config, registry *metadata.Registry, logger *zap.Logger) *Plugin {
	return &Plugin{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
	}
}

// Name はこのプラグインの名前を返す。
func (p *Plugin) Name() string {
	return "typegen"
}

// Generate は型宣言を生成し、出力ファイルを置き換える。
func (p *Plugin) Generate() error {
	source, err := p.Render()
	if err != nil {
		return err
	}

	if err := writeFile(p.cfg.Output, source); err != nil {
		return fmt.Errorf("write %s: %w", p.cfg.Output, err)
	}

	p.logger.Info("wrote generated types", zap.String("output", p.cfg.Output))

	return nil
}

// Render は出力ファイルの内容を返す。ファイルには書き込まない。
func (p *Plugin) Render() (string, error) {
	generator := codegen.NewTypeGenerator(
		p.registry,
		codegen.WithRootModule(p.cfg.Module),
		codegen.WithDerives(p.cfg.Derives...),
		codegen.WithSubstitutes(p.cfg.Substitutes),
		codegen.WithLogger(p.logger),
	)

	root, err := generator.Generate()
	if err != nil {
		return "", fmt.Errorf("generate types: %w", err)
	}

	return codegen.Render(root), nil
}

// writeFile は古い生成物を削除してから filename を書き込む。
func writeFile(filename, content string) error {
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil { //nolint:gosec // generated source is world readable
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
