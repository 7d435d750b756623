// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package log

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// SimpleLogger writes one JSON object per line.
type SimpleLogger struct {
	mutex  *sync.Mutex
	writer io.Writer
	now    func() time.Time
}

func (s *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	obj := map[string]interface{}{}
	for _, f := range fields {
		for k, v := range f {
			obj[k] = v
		}
	}
	obj["msg"] = msg
	obj["ts"] = s.now().Format(time.RFC3339Nano)

	b, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("error marshaling log message: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, err = fmt.Fprintln(s.writer, string(b))
	if err != nil {
		return fmt.Errorf("error writing log message: %w", err)
	}
	return nil
}

func NewSimpleLogger(w io.Writer) *SimpleLogger {
	return &SimpleLogger{
		mutex:  &sync.Mutex{},
		writer: w,
		now:    time.Now,
	}
}
