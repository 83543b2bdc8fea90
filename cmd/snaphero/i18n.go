// Package main provides localization for the snaphero CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Capture screenshots of web pages": "Webページのスクリーンショットを撮影",
		"snaphero captures web page screenshots in a headless browser, one URL at a time or in batches.": "snaphero はヘッドレスブラウザで Web ページのスクリーンショットを 1 件ずつ、またはバッチで撮影します。",

		// Capture flags
		"URL of the page to capture":                  "撮影するページの URL",
		"Output file (.png, .jpg or .jpeg)":           "出力ファイル（.png, .jpg, .jpeg）",
		"Capture the full scrollable page":            "スクロール可能なページ全体を撮影",
		"Seconds to wait after load before capturing": "読み込み後、撮影までに待機する秒数",
		"JPEG quality 1-100":                          "JPEG 品質（1-100）",

		// Viewport flags
		"Viewport width in pixels":           "ビューポート幅（ピクセル）",
		"Viewport height in pixels":          "ビューポート高さ（ピクセル）",
		"Use the mobile viewport (375x667)":  "モバイルのビューポート（375x667）を使用",
		"Use the tablet viewport (768x1024)": "タブレットのビューポート（768x1024）を使用",
		"Device scale factor (2 for HiDPI)":  "デバイススケール係数（HiDPI は 2）",

		// Page flags
		"Emulate a dark color scheme":                       "ダークカラースキームをエミュレート",
		"Hide common cookie consent banners":                "一般的な Cookie 同意バナーを非表示",
		"Wait until a CSS selector is visible":              "CSS セレクタが表示されるまで待機",
		"Navigation and selector timeout in milliseconds":   "ページ移動とセレクタ待機のタイムアウト（ミリ秒）",
		"Custom user agent":                                 "カスタムユーザーエージェント",
		"Extra request header \"Name: value\" (repeatable)": "追加リクエストヘッダー \"Name: value\"（複数指定可）",

		// Batch flags
		"File with one URL per line":                          "1 行に 1 URL を記述したファイル",
		"Prefix for batch output files":                       "バッチ出力ファイルの接頭辞",
		"Batch output format (png or jpg)":                    "バッチ出力形式（png または jpg）",
		"Directory for batch output files":                    "バッチ出力ファイルのディレクトリ",
		"Write a batch summary (Markdown, or JSON for .json)": "バッチのサマリーを出力（Markdown、.json の場合は JSON）",
		"Write a thumbnail grid of the batch":                 "バッチのサムネイル一覧画像を出力",

		// Browser flags
		"Browser engine (chromedp, playwright or rod)": "ブラウザエンジン（chromedp, playwright, rod）",
		"Path to Chrome executable":                    "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":             "ブラウザを非ヘッドレスモードで実行",
		"Ignore HTTPS certificate errors":              "HTTPS証明書エラーを無視",
		"HTTP proxy server (e.g., http://proxy:8080)":  "HTTPプロキシサーバー（例: http://proxy:8080）",
		"Launch a new browser for every capture":       "撮影ごとに新しいブラウザを起動",
		"YAML configuration file":                      "YAML 設定ファイル",

		// Debug and logging flags
		"Enable debug output":                  "デバッグ出力を有効化",
		"Directory for debug output":           "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",
		"Do not print the startup banner":      "起動時のバナーを表示しない",

		// Information flags
		"Show the complete manual": "詳細なマニュアルを表示",
		"Show usage examples":      "使用例を表示",
		"Show version information": "バージョン情報を表示",

		// Runtime messages
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",
		"Using %s viewport (%dx%d)":         "%s のビューポートを使用します (%dx%d)",
		"Summary saved to %s":               "サマリーを %s に保存しました",
		"Failed to write summary: %v":       "サマリーの書き込みに失敗しました: %v",
		"Failed to write contact sheet: %v": "コンタクトシートの書き込みに失敗しました: %v",
	})
}
