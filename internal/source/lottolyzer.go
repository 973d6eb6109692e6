package source

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// LottolyzerFetcher scrapes the Lottolyzer Mark Six history page. It is the
// primary source because it carries the most recent draws.
type LottolyzerFetcher struct {
	URL    string
	Client *http.Client
}

// NewLottolyzerFetcher creates the scraper with optional proxy support.
func NewLottolyzerFetcher(pageURL string, timeout time.Duration, proxyURL string) *LottolyzerFetcher {
	return &LottolyzerFetcher{
		URL:    pageURL,
		Client: newHTTPClient(timeout, proxyURL),
	}
}

func (f *LottolyzerFetcher) Name() string { return "lottolyzer" }

var (
	drawNoPattern  = regexp.MustCompile(`^\d{2}/\d{3}`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

func (f *LottolyzerFetcher) FetchDraws(since time.Time) ([]model.Draw, error) {
	req, err := http.NewRequest("GET", f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: lottolyzer: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: lottolyzer fetch: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lottolyzer: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: lottolyzer parse: %v", ErrSourceUnavailable, err)
	}

	var draws []model.Draw
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return
		}

		drawNo := strings.TrimSpace(cells.Eq(0).Text())
		dateText := strings.TrimSpace(cells.Eq(1).Text())
		winningText := strings.TrimSpace(cells.Eq(2).Text())
		extraText := ""
		if cells.Length() > 3 {
			extraText = strings.TrimSpace(cells.Eq(3).Text())
		}

		if !drawNoPattern.MatchString(drawNo) || !isoDatePattern.MatchString(dateText) {
			return
		}

		draw, err := parseLottolyzerRow(dateText[:10], winningText, extraText)
		if err != nil {
			log.Printf("[WARN] lottolyzer: skipping row %s: %v", dateText, err)
			return
		}
		draws = append(draws, draw)
	})

	if len(draws) == 0 {
		return nil, fmt.Errorf("%w: lottolyzer: no rows parsed", ErrSourceUnavailable)
	}
	return filterSince(draws, since), nil
}

func parseLottolyzerRow(dateText, winningText, extraText string) (model.Draw, error) {
	date, err := time.Parse("2006-01-02", dateText)
	if err != nil {
		return model.Draw{}, fmt.Errorf("bad date: %v", err)
	}

	var nums []int
	for _, part := range strings.Split(winningText, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return model.Draw{}, fmt.Errorf("bad winning number %q", part)
		}
		nums = append(nums, n)
	}
	if len(nums) != 6 {
		return model.Draw{}, fmt.Errorf("expected 6 winning numbers, got %d", len(nums))
	}

	draw := model.Draw{Date: date}
	copy(draw.Numbers[:], nums)
	if extraText != "" {
		if n, err := strconv.Atoi(extraText); err == nil {
			draw.Special = n
		}
	}

	draw.Normalize()
	if err := draw.Validate(); err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}
