package category

import (
	"fmt"
	"strings"
)

const summaryPromptLimit = 500

// buildPrompt 组装分类提示词，要求模型只回分类名
func buildPrompt(topic, summary string) string {
	var b strings.Builder
	b.WriteString("Analyze the following trending topic and categorize it into ONE category.\n\n")
	fmt.Fprintf(&b, "Trending Topic: %s\n", topic)
	if summary != "" {
		if len(summary) > summaryPromptLimit {
			summary = summary[:summaryPromptLimit]
		}
		fmt.Fprintf(&b, "\nWikipedia Summary: %s\n", summary)
	}
	b.WriteString("\nAvailable Categories (MUST choose ONE):\n")
	b.WriteString(strings.Join(All, ", "))
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("1. Analyze the topic and its context carefully\n")
	b.WriteString("2. Choose the MOST appropriate category from the list above\n")
	b.WriteString("3. Respond with ONLY the category name, nothing else\n")
	b.WriteString("4. The category name MUST be exactly as listed (case-sensitive)\n\n")
	b.WriteString("Category:")
	return b.String()
}

// parseReply 从模型输出中提取分类：取第一行并做大小写纠正。
// 解析不出合法分类时返回 ok=false，交给链上的下一个策略。
func parseReply(reply string) (string, bool) {
	line := strings.TrimSpace(reply)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	line = strings.Trim(line, `"'.`)
	if line == "" {
		return "", false
	}
	return Canonical(line)
}
