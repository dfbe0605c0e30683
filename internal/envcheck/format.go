package envcheck

import (
	"fmt"
	"strings"
)

// maskedValue replaces secret values in all output. Fixed length so the
// mask leaks nothing about the real value.
const maskedValue = "****************"

// FormatError renders a multi-section remediation message for a failed
// validation. Every missing required variable is listed with its purpose
// so the operator sees all problems at once.
func FormatError(res Result) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString("\n" + rule + "\n")
	b.WriteString("ERROR: Required AWS Environment Variables Missing\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("The following required environment variables are not set:\n\n")

	for _, v := range res.MissingRequired {
		fmt.Fprintf(&b, "  x %s\n", v.Name)
		fmt.Fprintf(&b, "    Purpose: %s\n\n", v.Description)
	}

	b.WriteString("To fix this issue, set the required environment variables:\n\n")
	b.WriteString("Option 1: Export in your shell (Linux/macOS):\n")
	b.WriteString("  export AWS_REGION='us-east-1'\n")
	b.WriteString("  export AWS_ACCESS_KEY_ID='your-access-key-id'\n")
	b.WriteString("  export AWS_SECRET_ACCESS_KEY='your-secret-access-key'\n\n")
	b.WriteString("Option 2: Create a .env file in the project root:\n")
	b.WriteString("  AWS_REGION=us-east-1\n")
	b.WriteString("  AWS_ACCESS_KEY_ID=your-access-key-id\n")
	b.WriteString("  AWS_SECRET_ACCESS_KEY=your-secret-access-key\n")

	if len(res.MissingOptional) > 0 {
		b.WriteString("\nOptional variables not set:\n\n")
		for _, v := range res.MissingOptional {
			fmt.Fprintf(&b, "  ! %s\n", v.Name)
			fmt.Fprintf(&b, "    Purpose: %s\n", v.Description)
		}
		b.WriteString("\nNote: AWS_SESSION_TOKEN is only needed when using temporary credentials\n")
		b.WriteString("(for example from 'aws sts assume-role' or AWS SSO).\n")
	}

	b.WriteString(rule + "\n")
	return b.String()
}

// Summary renders the masked confirmation printed after a successful
// validation. Variable names are listed; values are never echoed.
func Summary(res Result, snap Snapshot) string {
	var b strings.Builder
	b.WriteString("Environment variable validation passed\n")
	for _, v := range Variables {
		if !snap.IsSet(v.Name) {
			continue
		}
		if v.Name == "AWS_REGION" {
			// Region is not a secret and is useful for diagnostics.
			fmt.Fprintf(&b, "  - %s: %s\n", v.Name, strings.TrimSpace(snap.Get(v.Name)))
			continue
		}
		fmt.Fprintf(&b, "  - %s: %s (configured)\n", v.Name, maskedValue)
	}
	for _, v := range res.MissingOptional {
		fmt.Fprintf(&b, "  ! %s not set: %s\n", v.Name, v.Description)
	}
	return b.String()
}
