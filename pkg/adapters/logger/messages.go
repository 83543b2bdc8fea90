package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session and browser component
		"Launching browser in headless mode":  "ヘッドレスモードでブラウザを起動中",
		"Launching browser in visible mode":   "表示モードでブラウザを起動中",
		"Using Chrome at %s (%s)":             "Chrome を使用します: %s (%s)",
		"Playwright Chromium %s started":      "Playwright Chromium %s を起動しました",
		"Opened isolated context %dx%d":       "分離コンテキストを開きました %dx%d",
		"Failed to close browser context: %v": "ブラウザコンテキストを閉じられませんでした: %v",
		"Failed to close browser: %v":         "ブラウザを閉じられませんでした: %v",

		// Readiness
		"Loading %s...":                         "%s を読み込み中...",
		"Waiting for selector: %s":              "セレクタを待機中: %s",
		"Hiding cookie banners...":              "Cookie バナーを非表示にしています...",
		"Cookie banners hidden":                 "Cookie バナーを非表示にしました",
		"Cookie banner script failed on %s: %v": "%s で Cookie バナースクリプトが失敗しました: %v",
		"Waiting %s before capture":             "キャプチャ前に %s 待機中",

		// Capture
		"Capturing %s screenshot (full page: %t)": "%s のスクリーンショットを撮影中 (フルページ: %t)",
		"Wrote %d bytes to %s":                    "%d バイトを %s に書き込みました",
		"Screenshot saved: %s (%d bytes)":         "スクリーンショットを保存しました: %s (%d バイト)",
		"Capture failed for %s: %v":               "%s のキャプチャに失敗しました: %v",

		// Batch
		"Found %d URLs to capture":                "キャプチャ対象の URL が %d 件見つかりました",
		"[%d/%d] Processing: %s":                  "[%d/%d] 処理中: %s",
		"Batch stopped at target %d of %d: %v":    "バッチを %d / %d 件目で中止しました: %v",
		"Batch complete: %d succeeded, %d failed": "バッチ完了: 成功 %d 件, 失敗 %d 件",

		// Contact sheet
		"Skipping %s on contact sheet: %v":      "コンタクトシートで %s をスキップします: %v",
		"Contact sheet written: %s (%d images)": "コンタクトシートを書き込みました: %s (%d 枚)",

		// Debug output
		"Failed to save debug output: %v": "デバッグ出力の保存に失敗しました: %v",
	})
}
