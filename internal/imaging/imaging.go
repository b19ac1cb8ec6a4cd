package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Options 上传前压缩参数。目的只有一个：在上传前把载荷压到可控大小
type Options struct {
	MaxWidth  int // 最大宽度，0 表示不限制
	MaxHeight int // 最大高度，0 表示不限制
	AspectW   int // 居中裁剪宽比，0 表示不裁剪
	AspectH   int // 居中裁剪高比
	Quality   int // JPEG 质量，0 取默认 80
}

// WorkThumbOptions 作品缩略图固定 2:3 裁剪
func WorkThumbOptions() Options {
	return Options{MaxWidth: 800, MaxHeight: 1200, AspectW: 2, AspectH: 3, Quality: 80}
}

// AvatarOptions 头像压缩参数
func AvatarOptions() Options {
	return Options{MaxWidth: 400, MaxHeight: 400, Quality: 80}
}

// CoverOptions 封面压缩参数
func CoverOptions() Options {
	return Options{MaxWidth: 1280, MaxHeight: 1280, Quality: 80}
}

// Process 解码图片，缩放进最大外接框，可选居中裁剪，再按固定质量转 JPEG
func Process(data []byte, opt Options) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}

	if opt.AspectW > 0 && opt.AspectH > 0 {
		img = centerCrop(img, opt.AspectW, opt.AspectH)
	}

	b := img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), opt.MaxWidth, opt.MaxHeight)
	if w != b.Dx() || h != b.Dy() {
		img = scale(img, w, h)
	}

	quality := opt.Quality
	if quality <= 0 {
		quality = 80
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("编码 JPEG 失败: %w", err)
	}
	return out.Bytes(), nil
}

// fit 计算等比缩进最大外接框后的尺寸，不放大
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scaleX, scaleY := 1.0, 1.0
	if maxW > 0 && w > maxW {
		scaleX = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		scaleY = float64(maxH) / float64(h)
	}
	s := scaleX
	if scaleY < s {
		s = scaleY
	}
	if s >= 1.0 {
		return w, h
	}
	nw := int(float64(w) * s)
	nh := int(float64(h) * s)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// centerCrop 按宽高比居中裁剪
func centerCrop(img image.Image, aw, ah int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	targetW := w
	targetH := w * ah / aw
	if targetH > h {
		targetH = h
		targetW = h * aw / ah
	}

	x0 := b.Min.X + (w-targetW)/2
	y0 := b.Min.Y + (h-targetH)/2
	rect := image.Rect(x0, y0, x0+targetW, y0+targetH)

	out := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Copy(out, image.Point{}, img, rect, draw.Src, nil)
	return out
}

// scale 双线性缩放
func scale(img image.Image, w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}
