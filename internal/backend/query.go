package backend

import (
	"net/url"
	"strconv"

	"bimillog/internal/model"
)

func pageQuery(p model.PageRequest) url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(p.Size))
	return q
}

func cursorQuery(c model.CursorRequest) url.Values {
	q := url.Values{}
	if c.Cursor != nil {
		q.Set("cursor", strconv.FormatInt(*c.Cursor, 10))
	}
	size := c.Size
	if size <= 0 {
		size = 20
	}
	q.Set("size", strconv.Itoa(size))
	return q
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
