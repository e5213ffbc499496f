package llm

import "strings"

// SystemPrompt instructs the model to act as a migration tool.
const SystemPrompt = "You are a senior Java engineer. Convert Java 8 code to Java 11 while preserving behavior." +
	"Change any syntax in the Java 8 code that was removed or deprecated by Java 11." +
	"Output ONLY the Java 11 method."

// MigrationPrompt builds the conversation asking for the Java 11 version of
// a Java 8 method.
func MigrationPrompt(java8 string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{
			Role: RoleUser,
			Content: "Migrate the following Java 8 method (encapsulated within the <Java> and </Java> tags) to Java 11.\n\n" +
				"<Java>\n" + java8 + "</Java>",
		},
	}
}

const javaFence = "```java\n"

// ExtractJavaCode returns the code inside the first ```java fence of a model
// response. A response without the fence is returned trimmed; an unclosed
// fence yields everything after it.
func ExtractJavaCode(resp string) string {
	start := strings.Index(resp, javaFence)
	if start < 0 {
		return strings.TrimSpace(resp)
	}
	code := resp[start+len(javaFence):]
	if end := strings.Index(code, "```"); end >= 0 {
		code = code[:end]
	}
	return code
}
