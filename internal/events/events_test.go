package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	subjects []string
	err      error
	closed   bool
}

func (r *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func (r *recordingPublisher) Close() { r.closed = true }

func TestSubjects(t *testing.T) {
	assert.Equal(t, "underwriting.analysis.abc.completed", SubjectAnalysisCompleted("abc"))
	assert.Equal(t, "underwriting.analysis.abc.fallback", SubjectAgentFallback("abc"))
}

func TestKafkaMessage(t *testing.T) {
	ev := AnalysisCompletedEvent{
		ReportID:     "r1",
		Mode:         "ai",
		RiskScore:    55,
		RiskCategory: "Medium",
		Provenance:   map[string]string{"recommendation": "fallback"},
		Timestamp:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	msg, err := kafkaMessage(SubjectAnalysisCompleted("r1"), ev)
	require.NoError(t, err)

	assert.Equal(t, "underwriting.analysis.r1.completed", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "subject", msg.Headers[0].Key)

	var decoded AnalysisCompletedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev, decoded)
}

func TestKafkaMessageRejectsUnencodable(t *testing.T) {
	_, err := kafkaMessage("s", make(chan int))
	assert.Error(t, err)
}

func TestFanoutPublishesToAll(t *testing.T) {
	a := &recordingPublisher{}
	b := &recordingPublisher{err: errors.New("broker down")}
	f := Fanout{a, b}

	err := f.Publish(context.Background(), "underwriting.analysis.x.completed", struct{}{})
	assert.ErrorContains(t, err, "broker down")
	assert.Equal(t, []string{"underwriting.analysis.x.completed"}, a.subjects)
	assert.Equal(t, []string{"underwriting.analysis.x.completed"}, b.subjects)

	f.Close()
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestEmptyFanout(t *testing.T) {
	assert.NoError(t, Fanout(nil).Publish(context.Background(), "s", nil))
}

func TestKafkaPublisherFlushesPromptly(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "underwriting-events")
	defer p.Close()

	assert.Equal(t, KafkaBatchTimeout, p.writer.BatchTimeout)
	assert.Less(t, p.writer.BatchTimeout, 100*time.Millisecond)
	assert.Equal(t, "underwriting-events", p.writer.Topic)
}
