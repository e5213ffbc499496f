package deprecation

import "strings"

// Other is the category of terms no pattern matches.
const Other = "Other"

type category struct {
	name     string
	patterns []string
}

// categories are checked in order; the first whose pattern occurs in a term
// wins.
var categories = []category{
	{"JAXB", []string{"javax.xml.bind"}},
	{"JAX-WS", []string{"javax.xml.ws", "javax.jws"}},
	{"Activation", []string{"javax.activation"}},
	{"CORBA", []string{"org.omg"}},
	{"Transactions", []string{"javax.transaction"}},
	{"Security Policy", []string{"javax.security.auth.Policy"}},
	{"SecurityManager checks", []string{
		"SecurityManager.checkSystemClipboardAccess", ".checkSystemClipboardAccess",
		"SecurityManager.checkMemberAccess", ".checkMemberAccess",
		"SecurityManager.checkTopLevelWindow", ".checkTopLevelWindow",
		"SecurityManager.checkAwtEventQueueAccess", ".checkAwtEventQueueAccess",
	}},
	{"Thread APIs", []string{
		"Thread.stop(", ".stop(",
		"Thread.destroy(", ".destroy(",
		"System.runFinalizersOnExit(", "Runtime.runFinalizersOnExit(",
	}},
}

// Categorize maps a deprecated term to its API family.
func Categorize(term string) string {
	for _, c := range categories {
		for _, p := range c.patterns {
			if strings.Contains(term, p) {
				return c.name
			}
		}
	}
	return Other
}

// Categories lists the category names in reporting order, ending with Other.
func Categories() []string {
	names := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		names = append(names, c.name)
	}
	return append(names, Other)
}
