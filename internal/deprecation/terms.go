// Package deprecation holds the API terms removed or deprecated between Java 8
// and Java 11, and the categories used to report on them.
package deprecation

import "strings"

// FileFilterTerms selects scraped Java 8 methods worth pairing. A method
// qualifies when its source contains any of these substrings.
var FileFilterTerms = []string{
	// JAXB
	"JAXBContext", "Marshaller", "Unmarshaller", "DatatypeConverter",
	// JAX-WS
	"WebService", "SOAPBinding", "BindingProvider", "WebServiceClient",
	// JAF
	"DataHandler", "FileDataSource", "CommandMap", "MailcapCommandMap",
	// CORBA
	"NamingContextExt", "PortableRemoteObject",
	// JTA
	"UserTransaction", "TransactionManager", "XAResource",
	// Tooling
	"javapackager", "wsimport", "wsgen", "xjc", "schemagen",
	// Nashorn
	"NashornScriptEngineFactory", "ScriptObjectMirror", "NashornScriptEngine",
	// Pack200
	"Pack200.newPacker(", "Pack200.newUnpacker(",
}

// InitialTerms are the short API names used to describe the web scraped
// dataset.
var InitialTerms = []string{
	// JAXB
	"JAXBContext", "Marshaller", "Unmarshaller", "DatatypeConverter",
	// JAX-WS
	"WebService", "SOAPBinding", "Service", "BindingProvider",
	// JAF
	"DataHandler", "FileDataSource", "CommandMap", "MailcapCommandMap",
	// CORBA
	"org.omg", "ORB", "Any", "PortableRemoteObject", "NamingContextExt",
	// JTA
	"UserTransaction", "TransactionManager", "XAResource",
	// Thread and System cleanup
	"Thread.stop(", "Thread.destroy(",
	"Runtime.runFinalizersOnExit(", "System.runFinalizersOnExit(",
	// SecurityManager
	"checkAwtEventQueueAccess(", "checkMemberAccess(",
	"checkSystemClipboardAccess(", "checkTopLevelWindow(",
	// Policy
	"javax.security.auth.Policy", "Policy.getPolicy", "Policy.setPolicy",
	// Deployment and tooling
	"javaws", "appletviewer", "javapackager",
	"wsimport", "wsgen", "xjc", "schemagen",
}

// SecondaryTerms are fully qualified names used to describe the synthetic
// dataset and to measure keyword removal in migrated code.
var SecondaryTerms = []string{
	// Removed in Java 11
	"javax.xml.bind.DatatypeConverter",
	"javax.xml.bind.JAXBContext",
	"javax.xml.bind.Marshaller",
	"javax.xml.bind.Unmarshaller",
	"javax.xml.ws.Service",
	"javax.xml.ws.Dispatch",
	"javax.xml.ws.BindingProvider",
	"javax.xml.ws.soap.SOAPBinding",
	"javax.jws.WebService",
	"javax.activation.FileDataSource",
	"javax.activation.DataHandler",
	"javax.activation.CommandMap",
	"javax.activation.MailcapCommandMap",
	"org.omg.CORBA.ORB",
	"org.omg.CORBA.Any",
	"org.omg.CosNaming.NamingContextExt",

	// Java EE types present in Java 8 environments but not in the Java 11 JDK
	"javax.transaction.UserTransaction",
	"javax.transaction.TransactionManager",

	"javax.security.auth.Policy",
	"javax.security.auth.Policy.getPolicy",
	"javax.security.auth.Policy.setPolicy",

	// Still present but deprecated and unsafe
	"System.runFinalizersOnExit(",
	"Runtime.runFinalizersOnExit(",
	"Thread.stop(",
	".stop(",
	"Thread.destroy(",
	".destroy(",
	"SecurityManager.checkSystemClipboardAccess(",
	".checkSystemClipboardAccess(",
	"SecurityManager.checkMemberAccess(",
	".checkMemberAccess(",
	"SecurityManager.checkTopLevelWindow(",
	".checkTopLevelWindow(",
	"SecurityManager.checkAwtEventQueueAccess(",
	".checkAwtEventQueueAccess(",
}

// TermSets maps the names accepted on the command line to term lists.
var TermSets = map[string][]string{
	"filter":    FileFilterTerms,
	"initial":   InitialTerms,
	"secondary": SecondaryTerms,
}

// Contains reports whether text contains any of terms.
func Contains(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Matches returns every term found in text, in list order.
func Matches(text string, terms []string) []string {
	var found []string
	for _, term := range terms {
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}
