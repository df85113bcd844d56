package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/rizkirmdhn/docfetch/internal/common/config"
	"github.com/rizkirmdhn/docfetch/internal/common/messaging"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type testService struct {
	*DownloaderService
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestService(fetcher Fetcher, message messaging.Client) *testService {
	svc := NewDownloaderService(&config.DownloaderConfig{}, &config.RabbitMQConfig{Exchange: "docfetch"}, newTestLogger(), message, fetcher)
	ts := &testService{DownloaderService: svc, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	svc.SetOutput(ts.out, ts.errOut)
	return ts
}

type published struct {
	exchange   string
	routingKey string
	data       interface{}
}

// fakeClient records published messages in memory
type fakeClient struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (c *fakeClient) PublishMessage(ctx context.Context, exchange, routingKey string, body []byte) error {
	return c.PublishJSON(ctx, exchange, routingKey, body)
}

func (c *fakeClient) PublishJSON(_ context.Context, exchange, routingKey string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, published{exchange: exchange, routingKey: routingKey, data: data})
	return nil
}

func (c *fakeClient) Close() error { return nil }

// staticFetcher serves fixed bodies per URL and fails for anything else
func staticFetcher(bodies map[string]string) FetcherFunc {
	return func(_ context.Context, url string) ([]byte, error) {
		body, ok := bodies[url]
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		return []byte(body), nil
	}
}
