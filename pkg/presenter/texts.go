package presenter

const manualText = `SNAPHERO MANUAL (v%s)

DESCRIPTION
    snaphero captures screenshots of web pages in a headless browser.
    It supports full-page capture, device presets, custom viewports, delays,
    JPEG quality, dark mode, cookie banner hiding and batch capture.

CAPTURE
    --url URL                     Page to capture (required unless --batch)
    --output, -o FILE             Output file (default: screenshot.png)
                                  .jpg/.jpeg writes JPEG, anything else PNG
    --full-page                   Capture the whole scrollable page
    --delay SECONDS               Wait after load before capturing (default: 0)

VIEWPORT
    --viewport-width PIXELS       Viewport width (default: 1280)
    --viewport-height PIXELS      Viewport height (default: 720)
    --mobile                      Mobile viewport 375x667
    --tablet                      Tablet viewport 768x1024 (wins over --mobile)
    --scale FACTOR                Device scale factor (default: 1, 2 for HiDPI)

QUALITY
    --quality LEVEL               JPEG quality 1-100 (default: 80)

PAGE
    --dark-mode                   Emulate prefers-color-scheme: dark
    --hide-cookie-banners         Hide common cookie consent banners
    --wait-for-selector SELECTOR  Wait until SELECTOR is visible
    --timeout MILLISECONDS        Navigation and selector timeout (default: 15000)
    --user-agent STRING           Custom user agent
    --header "Name: value"        Extra request header (repeatable)

BATCH
    --batch FILE                  Capture every URL in FILE (one per line, # comments)
    --batch-prefix PREFIX         Output name prefix (default: screenshot_)
    --batch-format png|jpg        Output format of batch files (default: png)
    --output-dir DIR              Directory for batch files (default: .)
    --summary FILE                Write a batch summary (.json for JSON, else Markdown)
    --contact-sheet FILE          Write a thumbnail grid of the batch

BROWSER
    --engine chromedp|playwright|rod   Browser automation engine (default: chromedp)
    --chrome-path PATH            Chrome executable (falls back to CHROME_PATH)
    --no-headless                 Show the browser window
    --ignore-https-errors         Ignore certificate errors
    --proxy-server URL            HTTP proxy server
    --browser-per-capture         Launch a new browser for every capture

GENERAL
    --config FILE                 YAML configuration file; explicit flags win
    --debug, --debug-dir DIR      Write per-capture JSON records
    --log-level LEVEL             debug, info, warn or error (default: info)
    --quiet                       Suppress log output
    --no-banner                   Do not print the startup banner
    --manual, --examples, --version

EXIT STATUS
    0 on success and when a batch completes, even if some targets failed.
    1 on invalid options, a missing URL, browser launch failure or a failed
    single capture.
`

const examplesText = `SNAPHERO EXAMPLES

Basic screenshot:
    snaphero --url https://www.example.com

Full page capture:
    snaphero --url https://www.example.com --full-page -o full.png

Mobile viewport:
    snaphero --url https://www.example.com --mobile

High quality JPEG after a delay:
    snaphero --url https://www.example.com --delay 3 --quality 95 -o shot.jpg

HiDPI capture:
    snaphero --url https://www.example.com --scale 2

Dark mode, waiting for content:
    snaphero --url https://www.example.com --dark-mode --wait-for-selector "#content"

Hide cookie banners:
    snaphero --url https://www.example.com --hide-cookie-banners --full-page

Batch capture with a summary and contact sheet:
    snaphero --batch urls.txt --batch-prefix site_ --summary report.md --contact-sheet sheet.png

Use Playwright instead of chromedp:
    snaphero --engine playwright --url https://www.example.com

Batch file (urls.txt):
    # comment lines and blank lines are ignored
    https://www.example.com
    https://www.github.com
`
