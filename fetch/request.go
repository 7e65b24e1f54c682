package fetch

import (
	"context"
	"sync"

	"github.com/quillforge/go-fetch/logger"
)

var defaultClient = sync.OnceValue(func() Client {
	return NewClient(logger.New("info", false))
})

// Request performs spec with the package default client. The returned
// error, when non-nil, is always a *Failure.
func Request(ctx context.Context, spec *RequestSpec, opts *RequestOptions) (any, error) {
	return defaultClient().Do(ctx, spec, opts)
}
