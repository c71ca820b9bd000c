package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flixanalytics/flixrec/core"
)

// Loader 是目录快照加载器接口。
// 支持从不同来源加载快照（本地文件、HTTP 等）。
type Loader interface {
	// Load 加载目录快照
	Load(ctx context.Context) (*Catalog, error)
}

// FileLoader 从本地 CSV 文件加载目录快照。
type FileLoader struct {
	Path string
}

func (l *FileLoader) Load(ctx context.Context) (*Catalog, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// HTTPLoader 从 HTTP(S) 地址加载 CSV 目录快照（例如对象存储的公开地址）。
type HTTPLoader struct {
	URL     string
	Timeout time.Duration // 0 表示默认 30s
	Client  *http.Client  // 可选，便于注入测试用 Client
}

func (l *HTTPLoader) Load(ctx context.Context) (*Catalog, error) {
	client := l.Client
	if client == nil {
		timeout := l.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUnavailable,
			fmt.Sprintf("catalog: fetch %s: status %d", l.URL, resp.StatusCode))
	}
	return LoadCSV(resp.Body)
}

// CSV 快照的列名（与目录导出格式一致）。
const (
	colTitle    = "Title"
	colGenre    = "Genre"
	colSummary  = "Summary"
	colActors   = "Actors"
	colTags     = "Tags"
	colRating   = "IMDb Score"
	colImage    = "Image"
	colTrailer  = "TMDb Trailer"
	colCategory = "Series or Movie"
)

// LoadCSV 从 CSV 快照构建目录。第一行必须是表头；行序保留。
//
// 单行字段异常不会中断整个加载（逐行隔离）：
//   - 评分解析失败 → 0
//   - Title 为空 → 该行丢弃
func LoadCSV(r io.Reader) (*Catalog, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col[colTitle]; !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			"catalog: header missing Title column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []Item
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		it := Item{
			Title:      field(row, colTitle),
			Genre:      field(row, colGenre),
			Summary:    field(row, colSummary),
			Actors:     field(row, colActors),
			Tags:       field(row, colTags),
			ImageRef:   field(row, colImage),
			TrailerRef: field(row, colTrailer),
			Category:   field(row, colCategory),
		}
		if it.Title == "" {
			continue
		}
		if s := field(row, colRating); s != "" {
			if rating, err := strconv.ParseFloat(s, 64); err == nil {
				it.Rating = rating
			}
		}
		items = append(items, it)
	}

	return New(items), nil
}
