package docs

import (
	"strings"
	"testing"
)

func TestAll_FirstTopicIsQuickstart(t *testing.T) {
	topics := All()
	if len(topics) == 0 {
		t.Fatal("All() returned no topics")
	}
	if topics[0].Name != "quickstart" {
		t.Errorf("first topic = %q, want %q", topics[0].Name, "quickstart")
	}
}

func TestAll_FieldsPopulatedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if topic.Name == "" || topic.Title == "" || topic.Summary == "" || topic.Content == "" {
			t.Errorf("topic %+v has an empty field", topic.Name)
		}
		if seen[topic.Name] {
			t.Errorf("duplicate topic name: %q", topic.Name)
		}
		seen[topic.Name] = true
		if !strings.HasPrefix(topic.Content, topic.Title+"\n") {
			t.Errorf("topic %q content does not start with its title", topic.Name)
		}
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	topic, err := Get("Conditions")
	if err != nil {
		t.Fatalf("Get(Conditions) error: %v", err)
	}
	if topic.Name != "conditions" {
		t.Errorf("Name = %q, want %q", topic.Name, "conditions")
	}
}

func TestGet_NotFoundListsTopics(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Fatal("Get(nonexistent) should return error")
	}
	if !strings.Contains(err.Error(), "versioning") {
		t.Errorf("error should list topics: %v", err)
	}
}
