package carddemo

const (
	DEFAULT_PAGE_SIZE = 10
	// MAX_PAGE is the highest page index a list request may ask for.
	MAX_PAGE = 999999
)

// Page is the offset-paginated list envelope returned by every list endpoint.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalElements <= 0 {
		return 0
	}
	size := int64(p.Size)
	return int((p.TotalElements + size - 1) / size)
}

// LastPage is the last reachable page index, -1 for an empty result.
func (p Page[T]) LastPage() int {
	return p.TotalPages() - 1
}

func (p Page[T]) HasNext() bool {
	if p.Size <= 0 {
		return false
	}
	return int64(p.Page) < (p.TotalElements-1)/int64(p.Size)
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 0
}

// PageInfo is the pagination state a list screen renders.
type PageInfo struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

func (p Page[T]) Info() PageInfo {
	return PageInfo{
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		HasNext:       p.HasNext(),
		HasPrevious:   p.HasPrevious(),
	}
}

// Paginate slices items into the requested page. Out-of-range pages come
// back empty with the real total.
func Paginate[T any](items []T, page int, size int) Page[T] {
	if size <= 0 {
		size = DEFAULT_PAGE_SIZE
	}
	if page < 0 {
		page = 0
	}
	result := Page[T]{
		Content:       []T{},
		Page:          page,
		Size:          size,
		TotalElements: int64(len(items)),
	}
	if len(items) == 0 || page > (len(items)-1)/size {
		return result
	}
	start := page * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	result.Content = append(result.Content, items[start:end]...)
	return result
}
