package simplelibrary

import "strings"

// Fixed extension mapping for streamed responses. Anything unknown falls
// back to the generic octet type.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".json": "application/json",
	".xml":  "application/xml",
	".csv":  "text/csv; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".zip":  "application/zip",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".epub": "application/epub+zip",
}

// ContentTypeForPath infers a content type from the path's extension.
func ContentTypeForPath(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx >= 0 {
		if ct, ok := contentTypes[strings.ToLower(path[idx:])]; ok {
			return ct
		}
	}
	return "application/octet-stream"
}
