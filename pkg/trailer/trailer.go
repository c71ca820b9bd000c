// Package trailer 解析预告片 URI，从已知的 URL 形态中提取平台视频 ID。
// 无法识别的形态不是错误：返回 ok=false，调用方按“无可播放预告片”处理。
package trailer

import "strings"

const embedPrefix = "https://www.youtube.com/embed/"

// VideoID 从 YouTube URL 中提取视频 ID。
//
// 支持的形态：
//   - https://www.youtube.com/watch?v=<id>
//   - https://youtu.be/<id>
func VideoID(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	if i := strings.Index(rawURL, "youtube.com/watch?v="); i >= 0 {
		id := rawURL[i+len("youtube.com/watch?v="):]
		return trimAfterID(id)
	}
	if i := strings.Index(rawURL, "youtu.be/"); i >= 0 {
		id := rawURL[i+len("youtu.be/"):]
		return trimAfterID(id)
	}
	return "", false
}

// EmbedURL 返回视频 ID 对应的嵌入播放地址；URL 不可识别时 ok 为 false。
func EmbedURL(rawURL string) (string, bool) {
	id, ok := VideoID(rawURL)
	if !ok {
		return "", false
	}
	return embedPrefix + id, true
}

// trimAfterID 截断 ID 之后的 query/fragment 残留。
func trimAfterID(id string) (string, bool) {
	if j := strings.IndexAny(id, "&?#"); j >= 0 {
		id = id[:j]
	}
	if id == "" {
		return "", false
	}
	return id, true
}
