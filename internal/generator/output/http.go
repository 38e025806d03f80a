package output

import (
	"bytes"
	"encoding/json"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// HTTPParams type configures the HTTP sink.
type HTTPParams struct {
	URL        string            `json:"url"         yaml:"url"`
	Headers    map[string]string `json:"headers"     yaml:"headers"`
	MaxRetries int               `json:"max_retries" yaml:"max_retries"`
}

// HTTPWriter type posts every frame as a JSON envelope with batch
// metadata, retrying transient failures.
type HTTPWriter struct {
	params  HTTPParams
	client  *retryablehttp.Client
	summary Summary
}

var _ Writer = (*HTTPWriter)(nil)

func NewHTTPWriter(params map[string]any) (*HTTPWriter, error) {
	p, err := common.AnyToStruct[HTTPParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid http writer params")
	}

	if p.URL == "" {
		return nil, errors.New("http writer requires url")
	}

	if p.MaxRetries <= 0 {
		p.MaxRetries = 3
	}

	client := retryablehttp.NewClient()
	client.RetryMax = p.MaxRetries
	client.Logger = nil

	return &HTTPWriter{params: *p, client: client, summary: Summary{Type: "http"}}, nil
}

func (w *HTTPWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	rows := make([]map[string]any, f.Len())
	for i := 0; i < f.Len(); i++ {
		rows[i] = f.Row(i)
	}

	envelope := map[string]any{"rows": rows}
	if meta != nil {
		envelope["meta"] = meta
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.New(err.Error())
	}

	req, err := retryablehttp.NewRequest("POST", w.params.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.New(err.Error())
	}

	req.Header.Set("Content-Type", "application/json")

	for k, v := range w.params.Headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to post rows to %q", w.params.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected status %d from %q", resp.StatusCode, w.params.URL)
	}

	res := &WriteResult{Rows: f.Len(), Destination: w.params.URL}
	w.summary.Add(res)

	return res, nil
}

func (w *HTTPWriter) Finalize() (*Summary, error) {
	w.client.HTTPClient.CloseIdleConnections()

	return &w.summary, nil
}
