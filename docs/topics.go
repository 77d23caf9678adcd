// Package docs embeds the k4tax user manual, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var manual embed.FS

// index is the topic listing all the others.
const index = "readme"

// all is the topic name standing for every topic but the index.
const all = "*"

// GetTopic returns the markdown of a topic.
func GetTopic(topic string) (string, error) {
	if topic == all {
		return GetTopics(all)
	}
	content, err := manual.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the markdown of the topics, separated by a blank line.
func GetTopics(topics ...string) (string, error) {
	var names []string
	for _, topic := range topics {
		if topic != all {
			names = append(names, topic)
			continue
		}
		every, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		names = append(names, every...)
	}

	var b strings.Builder
	for _, name := range names {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(&b, content)
	}
	return b.String(), nil
}

// GetAllTopics returns the topic names in alphabetical order, without the
// index.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(manual, "*.md")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(files))
	for _, file := range files {
		if name := strings.TrimSuffix(file, ".md"); name != index {
			topics = append(topics, name)
		}
	}
	return topics, nil
}
