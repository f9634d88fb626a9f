package rule

import (
	"regexp"
	"strings"
)

// Built-in rule set names.
const (
	SetIntegrationTest = "integration-test"
	SetUnitTest        = "unit-test"
	SetJavaSource      = "java-source"
)

// Built-in check IDs.
const (
	CheckExtendsAbstractProcessTest = "extends-abstract-process-test"
	CheckJUnit5Annotations          = "junit5-annotations"
	CheckNoThreadSleep              = "no-thread-sleep"
	CheckAssertJ                    = "assertj-assertions"
	CheckTestMethodNaming           = "test-method-naming"
	CheckNoSystemOut                = "no-system-out"
	CheckNoPrintStackTrace          = "no-print-stack-trace"
	CheckNoWildcardImport           = "no-wildcard-import"
)

const (
	// javaGap is whitespace, line comments and block comments.
	javaGap = `(?:\s|//[^\n]*|/\*(?s:.*?)\*/)*`

	// annotationArgs is an optional argument list whose string and char
	// literals may contain ')'.
	annotationArgs = `(?:\((?:"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|[^)"'])*\))?`
)

var (
	extendsAbstractProcessTestRe = regexp.MustCompile(`\bextends\s+AbstractProcessTest\b`)

	// junitImportRe captures the part after "org.junit." of every import.
	junitImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?org\.junit\.([\w.]+(?:\.\*)?)\s*;`)

	threadSleepRe = regexp.MustCompile(`\bThread\.sleep\s*\(`)

	legacyAssertionRe = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?(org\.junit\.Assert|org\.junit\.jupiter\.api\.Assertions|org\.hamcrest|junit\.framework\.(?:Assert|TestCase))\b`)

	// testMethodRe matches a test annotation, any further annotations and
	// modifiers, and captures the method name. Comments may sit between them,
	// and annotation arguments may contain parentheses inside literals.
	testMethodRe = regexp.MustCompile(`@(?:Test|ParameterizedTest|RepeatedTest)\b` + javaGap + annotationArgs +
		`(?:` + javaGap + `@[\w.]+` + javaGap + annotationArgs + `)*` + javaGap +
		`(?:(?:public|protected|private|static|final|synchronized)\b` + javaGap + `)*` +
		`void\s+(\w+)\s*\(`)

	testMethodNameRe = regexp.MustCompile(`^should_\w+_when_\w+$`)

	systemOutRe       = regexp.MustCompile(`\bSystem\.(?:out|err)\.print`)
	printStackTraceRe = regexp.MustCompile(`\.printStackTrace\s*\(\s*\)`)
	wildcardImportRe  = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\.\*\s*;`)
)

func extendsAbstractProcessTest() Check {
	return Check{
		ID:      CheckExtendsAbstractProcessTest,
		Message: "Integration test must extend AbstractProcessTest",
		Guidance: `# Integration tests extend AbstractProcessTest

Process integration tests share one engine bootstrap. ` + "`AbstractProcessTest`" + `
deploys the process under test, provides the API accessors and cleans up
cases after each test.

` + "```java" + `
class LoanRequestIT extends AbstractProcessTest {
}
` + "```",
		Fires: absent(extendsAbstractProcessTestRe),
	}
}

func junit5Annotations() Check {
	return Check{
		ID:      CheckJUnit5Annotations,
		Message: "Use JUnit 5 annotations (org.junit.jupiter.api) instead of JUnit 4",
		Guidance: `# JUnit 5 only

Use ` + "`@BeforeEach`, `@AfterEach`, `@Test` and `@Disabled`" + ` from
` + "`org.junit.jupiter.api`" + `. JUnit 4 annotations such as ` + "`org.junit.Before`" + `
or runners (` + "`@RunWith`" + `) are silently ignored by the Jupiter engine.`,
		Fires: func(src Source) bool {
			return len(junit4Imports(src)) > 0
		},
		Detail: func(src Source) string {
			return joinUnique(junit4Imports(src))
		},
	}
}

// junit4Imports lists org.junit imports outside jupiter. Assertion and
// assumption classes are left to the assertion check.
func junit4Imports(src Source) []string {
	var out []string
	for _, m := range junitImportRe.FindAllStringSubmatch(src.Content, -1) {
		rest := m[1]
		if strings.HasPrefix(rest, "jupiter.") ||
			strings.HasPrefix(rest, "Assert") ||
			strings.HasPrefix(rest, "Assume") ||
			strings.HasPrefix(rest, "platform.") {
			continue
		}
		out = append(out, "org.junit."+rest)
	}
	return out
}

func noThreadSleep() Check {
	return Check{
		ID:      CheckNoThreadSleep,
		Message: "Avoid Thread.sleep; use Awaitility to wait for process state",
		Guidance: `# No Thread.sleep in tests

Fixed sleeps make tests slow and flaky. Wait for the condition instead:

` + "```java" + `
await().atMost(Duration.ofSeconds(10))
       .until(() -> processAPI.getProcessInstance(caseId).getState(), is("completed"));
` + "```",
		Fires: contains(threadSleepRe),
	}
}

func assertJAssertions() Check {
	return Check{
		ID:      CheckAssertJ,
		Message: "Use AssertJ assertions (org.assertj.core.api.Assertions)",
		Guidance: `# AssertJ assertions

Use ` + "`assertThat`" + ` from ` + "`org.assertj.core.api.Assertions`" + `. JUnit
` + "`Assert`/`Assertions`" + ` and Hamcrest matchers are not used in this code base.`,
		Fires: contains(legacyAssertionRe),
		Detail: func(src Source) string {
			var found []string
			for _, m := range legacyAssertionRe.FindAllStringSubmatch(src.Content, -1) {
				found = append(found, m[1])
			}
			return joinUnique(found)
		},
	}
}

func testMethodNaming() Check {
	return Check{
		ID:      CheckTestMethodNaming,
		Message: "Test methods must follow should_<expected>_when_<condition>",
		Guidance: `# Test method naming

Name tests after the behaviour they assert:

` + "```java" + `
@Test
void should_create_case_when_request_is_valid() { }
` + "```",
		Fires: func(src Source) bool {
			return len(badTestMethodNames(src)) > 0
		},
		Detail: func(src Source) string {
			return joinUnique(badTestMethodNames(src))
		},
	}
}

func badTestMethodNames(src Source) []string {
	var bad []string
	for _, m := range testMethodRe.FindAllStringSubmatch(src.Content, -1) {
		if !testMethodNameRe.MatchString(m[1]) {
			bad = append(bad, m[1])
		}
	}
	return bad
}

func noSystemOut() Check {
	return Check{
		ID:      CheckNoSystemOut,
		Message: "Use an SLF4J logger instead of System.out/System.err",
		Guidance: `# Logging

Declare a logger and log through it:

` + "```java" + `
private static final Logger LOGGER = LoggerFactory.getLogger(MyConnector.class);
` + "```",
		Fires: contains(systemOutRe),
	}
}

func noPrintStackTrace() Check {
	return Check{
		ID:       CheckNoPrintStackTrace,
		Message:  "Log exceptions through the logger instead of printStackTrace()",
		Guidance: "# Exceptions\n\nPass the exception to the logger: `LOGGER.error(\"Cannot execute connector\", e);`",
		Fires:    contains(printStackTraceRe),
	}
}

func noWildcardImport() Check {
	return Check{
		ID:       CheckNoWildcardImport,
		Message:  "Avoid wildcard imports",
		Guidance: "# Imports\n\nImport each class explicitly so dependencies stay visible in review.",
		Fires:    contains(wildcardImportRe),
		Detail: func(src Source) string {
			var pkgs []string
			for _, m := range wildcardImportRe.FindAllStringSubmatch(src.Content, -1) {
				pkgs = append(pkgs, m[1]+".*")
			}
			return joinUnique(pkgs)
		},
	}
}

// Builtin returns the built-in rule sets for Bonita Java projects.
func Builtin() *Registry {
	return NewRegistry(
		&Set{
			Name:        SetIntegrationTest,
			Description: "Bonita process integration tests (*IT.java)",
			PathPattern: regexp.MustCompile(`/src/test/java/.*IT\.java$`),
			Checks: []Check{
				extendsAbstractProcessTest(),
				junit5Annotations(),
				noThreadSleep(),
				assertJAssertions(),
				testMethodNaming(),
			},
		},
		&Set{
			Name:        SetUnitTest,
			Description: "Unit tests (*Test.java)",
			PathPattern: regexp.MustCompile(`/src/test/java/.*Test\.java$`),
			Checks: []Check{
				junit5Annotations(),
				noThreadSleep(),
				assertJAssertions(),
				testMethodNaming(),
			},
		},
		&Set{
			Name:        SetJavaSource,
			Description: "Production Java sources",
			PathPattern: regexp.MustCompile(`/src/main/java/.*\.java$`),
			Checks: []Check{
				noSystemOut(),
				noPrintStackTrace(),
				noWildcardImport(),
			},
		},
	)
}
