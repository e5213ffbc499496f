package deprecation

import (
	"reflect"
	"testing"
)

func TestContains(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"JAXBContext ctx = JAXBContext.newInstance(Foo.class);", true},
		{"Pack200.Packer p = Pack200.newPacker();", true},
		{"Pack200.Packer p;", false},
		{"return a + b;", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Contains(tt.text, FileFilterTerms); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	text := "javax.xml.bind.Marshaller m = ctx.createMarshaller(); t.stop();"
	got := Matches(text, SecondaryTerms)
	want := []string{"javax.xml.bind.Marshaller", ".stop("}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matches() = %q, want %q", got, want)
	}
	if Matches("int x;", SecondaryTerms) != nil {
		t.Error("expected nil for no matches")
	}
}

func TestCategorize(t *testing.T) {
	tests := map[string]string{
		"javax.xml.bind.JAXBContext":           "JAXB",
		"javax.xml.ws.soap.SOAPBinding":        "JAX-WS",
		"javax.jws.WebService":                 "JAX-WS",
		"javax.activation.DataHandler":         "Activation",
		"org.omg.CORBA.ORB":                    "CORBA",
		"javax.transaction.UserTransaction":    "Transactions",
		"javax.security.auth.Policy.setPolicy": "Security Policy",
		".checkMemberAccess(":                  "SecurityManager checks",
		"Runtime.runFinalizersOnExit(":         "Thread APIs",
		".destroy(":                            "Thread APIs",
		"JAXBContext":                          Other,
		"javaws":                               Other,
	}
	for term, want := range tests {
		if got := Categorize(term); got != want {
			t.Errorf("Categorize(%q) = %q, want %q", term, got, want)
		}
	}
}

func TestEverySecondaryTermHasCategory(t *testing.T) {
	for _, term := range SecondaryTerms {
		if Categorize(term) == Other {
			t.Errorf("secondary term %q falls into Other", term)
		}
	}
}

func TestCategories(t *testing.T) {
	names := Categories()
	if len(names) != 9 || names[0] != "JAXB" || names[len(names)-1] != Other {
		t.Errorf("unexpected categories %q", names)
	}
}

func TestTermSets(t *testing.T) {
	for _, name := range []string{"filter", "initial", "secondary"} {
		if len(TermSets[name]) == 0 {
			t.Errorf("term set %q is empty", name)
		}
	}
}
