/*
Copyright 2023 The Koordinator Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logs reconstructs the plain text log of a finished container from
// the history server's HTML log viewer pages.
package logs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"k8s.io/klog/v2"
)

// LogPageParseError means a viewer page did not contain the expected log
// element, i.e. the page shape changed. It degrades the log bundle, never
// the job outcome.
type LogPageParseError struct {
	URL string
}

func (e *LogPageParseError) Error() string {
	return fmt.Sprintf("log element not found in viewer page %v", e.URL)
}

// Scraper fetches log viewer pages and extracts the embedded log text.
type Scraper struct {
	client *resty.Client
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{client: resty.New().SetTimeout(timeout)}
}

// Fetch returns the log text behind viewerURL. The viewer wraps the raw log
// in a <pre> element inside the content cell; when the log is paginated a
// "next" anchor points at the following page, which is fetched and appended
// until no such anchor remains.
func (s *Scraper) Fetch(ctx context.Context, viewerURL string) (string, error) {
	var assembled strings.Builder
	visited := map[string]bool{}
	pageURL := viewerURL
	for pageURL != "" && !visited[pageURL] {
		visited[pageURL] = true

		resp, err := s.client.R().SetContext(ctx).Get(pageURL)
		if err != nil {
			return assembled.String(), err
		}
		if resp.IsError() {
			return assembled.String(), fmt.Errorf("fetch log page %v failed with http status %d", pageURL, resp.StatusCode())
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
		if err != nil {
			return assembled.String(), fmt.Errorf("parse log page %v failed: %v", pageURL, err)
		}

		text, ok := extractLogText(doc)
		if !ok {
			return assembled.String(), &LogPageParseError{URL: pageURL}
		}
		assembled.WriteString(text)

		next, err := nextPageURL(doc, pageURL)
		if err != nil {
			return assembled.String(), err
		}
		if next != "" {
			klog.V(4).Infof("log page %v continues at %v", pageURL, next)
		}
		pageURL = next
	}
	return assembled.String(), nil
}

// extractLogText locates the log payload. The known viewer shape keeps it in
// a <pre> under the content cell; older viewers emit bare <pre> elements
// with the log in the last one.
func extractLogText(doc *goquery.Document) (string, bool) {
	selection := doc.Find("td.content pre")
	if selection.Length() == 0 {
		selection = doc.Find("pre")
	}
	if selection.Length() == 0 {
		return "", false
	}
	// goquery decodes HTML entities when rendering text.
	return selection.Last().Text(), true
}

func nextPageURL(doc *goquery.Document, pageURL string) (string, error) {
	var href string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(strings.TrimSpace(a.Text())), "next") {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	if href == "" {
		return "", nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("bad log page url %v: %v", pageURL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("bad pagination link %v on %v: %v", href, pageURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}
