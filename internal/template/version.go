package template

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// InitialVersion is the first version number and the fallback for version
// strings that cannot be parsed.
const InitialVersion = "v1.0"

var versionRe = regexp.MustCompile(`v(\d+)\.(\d+)`)

// ParseVersion extracts MAJOR and MINOR from a "vMAJOR.MINOR" string.
func ParseVersion(v string) (major, minor int, ok bool) {
	m := versionRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0, false
	}
	major, err1 := strconv.Atoi(m[1])
	minor, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// IncrementVersion bumps a version number. A major bump resets the minor
// component. An unparseable current version resets to v1.0 rather than
// failing.
func IncrementVersion(current, changeType string) string {
	major, minor, ok := ParseVersion(current)
	if !ok {
		return InitialVersion
	}
	if changeType == ChangeMajor {
		return fmt.Sprintf("v%d.0", major+1)
	}
	return fmt.Sprintf("v%d.%d", major, minor+1)
}

// AppendVersion records a new immutable version with an incremented number
// and moves CurrentVersion and LastModified forward. Existing versions are
// never modified.
func (t *Template) AppendVersion(content, changeType, description string, linked []string, now time.Time) Version {
	v := Version{
		ID:                uuid.NewString(),
		Number:            IncrementVersion(t.CurrentVersion, changeType),
		Content:           content,
		CreatedAt:         now,
		ChangeType:        changeType,
		ChangeDescription: description,
		LinkedDocuments:   append([]string(nil), linked...),
	}
	t.Versions = append(t.Versions, v)
	t.CurrentVersion = v.Number
	t.LastModified = now
	return v
}

// Duplicate returns a new template holding the latest content of t as its
// only version.
func Duplicate(t *Template, name string, now time.Time) (Template, error) {
	latest := t.Latest()
	if latest == nil {
		return Template{}, fmt.Errorf("template %q has no versions to duplicate", t.ID)
	}
	return Template{
		ID:             uuid.NewString(),
		Name:           name,
		PolicyType:     t.PolicyType,
		CurrentVersion: InitialVersion,
		Versions: []Version{{
			ID:                uuid.NewString(),
			Number:            InitialVersion,
			Content:           latest.Content,
			CreatedAt:         now,
			ChangeType:        ChangeMajor,
			ChangeDescription: "Initial version (duplicated from " + t.Name + ")",
			LinkedDocuments:   []string{},
		}},
		LastModified: now,
	}, nil
}
