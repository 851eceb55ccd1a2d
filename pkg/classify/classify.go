// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package classify assigns files a media kind based on their extension.
package classify

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind is the media category of a file
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindOther Kind = "other"
)

var (
	imageExtensions = map[string]struct{}{
		".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
		".bmp": {}, ".tiff": {}, ".webp": {},
	}
	videoExtensions = map[string]struct{}{
		".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".flv": {}, ".mkv": {},
	}
	audioExtensions = map[string]struct{}{
		".mp3": {}, ".wav": {}, ".ogg": {}, ".m4a": {}, ".aac": {},
	}
)

// 🔍 Classify returns the media kind for a path, by extension only.
// The extension match is case-insensitive.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case has(imageExtensions, ext):
		return KindImage
	case has(videoExtensions, ext):
		return KindVideo
	case has(audioExtensions, ext):
		return KindAudio
	default:
		return KindOther
	}
}

// 📝 ParseKind validates a user-supplied kind name
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindImage:
		return KindImage, nil
	case KindVideo:
		return KindVideo, nil
	case KindAudio:
		return KindAudio, nil
	case KindOther:
		return KindOther, nil
	default:
		return "", errors.Errorf("unknown file kind %q (expected image, video, audio or other)", s)
	}
}

func has(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}
