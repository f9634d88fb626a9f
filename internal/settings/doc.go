// Package settings generates and merges the assistant's settings.json hook
// wiring for a project type.
//
// A generated document registers one PostToolUse command per rule set:
//
//	{
//	  "hooks": {
//	    "PostToolUse": [
//	      {
//	        "matcher": "Edit|Write|MultiEdit",
//	        "hooks": [
//	          {"type": "command", "command": "bonitahooks hook unit-test", "timeout": 2}
//	        ]
//	      }
//	    ]
//	  }
//	}
//
// Merging into an existing file replaces only the commands that invoke the
// same binary's hook subcommand. Other hooks and unrelated top-level keys are
// kept.
package settings
