package intent

import "regexp"

// builtinRules returns the default rule table. Order is load-bearing:
// rules are scanned top to bottom and the first match wins, so within each
// concern the narrow patterns sit above the broad ones and the bare
// single-word deletions stay anchored to full identifiers.
func builtinRules() []Rule {
	return []Rule{
		// Listing
		{
			Category: "file_listing",
			Pattern:  regexp.MustCompile(`(?:show|list|display)\s+(?:me\s+)?(?:the\s+)?(?:files?|contents?|directory)\s*(?:in\s+(.+))?`),
			Template: "ls {path}",
			Examples: []string{"show me the files", "list contents"},
		},
		{
			Category: "file_listing",
			Pattern:  regexp.MustCompile(`(?:what'?s|what\s+is)\s+in\s+(?:the\s+)?(.+)\s+(?:directory|folder)`),
			Template: "ls {path}",
			Examples: []string{"what's in this directory", "what's in the src directory"},
		},
		{
			Category: "file_listing",
			Pattern:  regexp.MustCompile(`list\s+(?:all\s+)?files?\s+in\s+(.+)`),
			Template: "ls {path}",
			Examples: []string{"list all files in /tmp"},
		},
		{
			Category: "file_listing",
			Pattern:  regexp.MustCompile(`show\s+(?:me\s+)?(?:the\s+)?current\s+directory\s+contents?`),
			Template: "ls",
		},

		// Navigation
		{
			Category: "directory_navigation",
			Pattern:  regexp.MustCompile(`(?:go\s+to|change\s+to|navigate\s+to|enter)\s+(?:the\s+)?(.+)\s+(?:directory|folder)`),
			Template: "cd {path}",
			Examples: []string{"enter the projects folder"},
		},
		{
			Category: "directory_navigation",
			Pattern:  regexp.MustCompile(`cd\s+to\s+(.+)`),
			Template: "cd {path}",
			Examples: []string{"cd to /tmp"},
		},
		{
			Category: "directory_navigation",
			Pattern:  regexp.MustCompile(`move\s+to\s+(.+)\s+(?:directory|folder)`),
			Template: "cd {path}",
		},
		{
			Category: "directory_navigation",
			Pattern:  regexp.MustCompile(`go\s+(?:to\s+)?home`),
			Template: "cd ~",
			Examples: []string{"go to home"},
		},
		{
			Category: "directory_navigation",
			Pattern:  regexp.MustCompile(`go\s+back\s+(?:to\s+)?parent\s+(?:directory|folder)`),
			Template: "cd ..",
			Examples: []string{"go back to parent directory"},
		},
		{
			Category: "directory_navigation",
			Pattern:  regexp.MustCompile(`go\s+up(?:\s+(?:a|one)\s+level)?`),
			Template: "cd ..",
			Examples: []string{"go up"},
		},

		// Directory creation
		{
			Category: "directory_creation",
			Pattern:  regexp.MustCompile(`(?:create|make|mkdir)\s+(?:a\s+)?(?:new\s+)?(?:directory|folder)\s+(?:called\s+|named\s+)?(.+)`),
			Template: "mkdir {name}",
			Examples: []string{"create a new folder called projects", "make a directory named test"},
		},
		{
			Category: "directory_creation",
			Pattern:  regexp.MustCompile(`new\s+(?:directory|folder)\s+(.+)`),
			Template: "mkdir {name}",
			Examples: []string{"new folder drafts"},
		},
		{
			Category: "directory_creation",
			Pattern:  regexp.MustCompile(`make\s+(?:directory|folder)\s+(.+)`),
			Template: "mkdir {name}",
		},
		{
			Category: "directory_creation",
			Pattern:  regexp.MustCompile(`(?:create|make)\s+(?:folder|directory)\s+(?:called\s+|named\s+)?(.+)`),
			Template: "mkdir {name}",
		},

		// Directory deletion
		{
			Category: "directory_deletion",
			Pattern:  regexp.MustCompile(`(?:remove|delete|rm)\s+(?:the\s+)?(?:directory|folder)\s+(?:called\s+|named\s+)?(.+)`),
			Template: "rm -r {target}",
			Examples: []string{"remove folder called test", "delete directory named backup"},
		},
		{
			Category: "directory_deletion",
			Pattern:  regexp.MustCompile(`(?:delete|remove)\s+(?:folder|directory)\s+(.+)`),
			Template: "rm -r {target}",
		},
		{
			Category: "directory_deletion",
			Pattern:  regexp.MustCompile(`(?:rm|rmdir)\s+(?:the\s+)?(?:directory|folder)\s+(.+)`),
			Template: "rm -r {target}",
		},
		{
			Category: "directory_deletion",
			Pattern:  regexp.MustCompile(`(?:delete|remove)\s+(?:the\s+)?(.+)\s+(?:directory|folder)`),
			Template: "rm -r {target}",
			Examples: []string{"delete the test folder"},
		},
		{
			Category: "directory_deletion",
			Pattern:  regexp.MustCompile(`^delete\s+([a-zA-Z_][a-zA-Z0-9_]*)$`),
			Template: "rm -rf {target}",
			Examples: []string{"delete project"},
		},
		{
			Category: "directory_deletion",
			Pattern:  regexp.MustCompile(`^remove\s+([a-zA-Z_][a-zA-Z0-9_]*)$`),
			Template: "rm -rf {target}",
		},

		// File creation
		{
			Category: "file_creation",
			Pattern:  regexp.MustCompile(`(?:create|make|touch)\s+(?:a\s+)?(?:new\s+)?file\s+(?:called\s+|named\s+)?(.+)`),
			Template: "touch {name}",
			Examples: []string{"create a new file called notes.txt"},
		},
		{
			Category: "file_creation",
			Pattern:  regexp.MustCompile(`new\s+file\s+(.+)`),
			Template: "touch {name}",
		},
		{
			Category: "file_creation",
			Pattern:  regexp.MustCompile(`create\s+empty\s+file\s+(.+)`),
			Template: "touch {name}",
			Examples: []string{"create empty file todo.txt"},
		},

		// Copy, move, delete of files
		{
			Category: "file_operations",
			Pattern:  regexp.MustCompile(`(?:copy|cp)\s+(.+)\s+to\s+(.+)`),
			Template: "cp {source} {dest}",
			Examples: []string{"copy file.txt to backup", "copy readme.md to docs"},
		},
		{
			Category: "file_operations",
			Pattern:  regexp.MustCompile(`(?:move|mv|rename)\s+(.+)\s+to\s+(.+)`),
			Template: "mv {source} {dest}",
			Examples: []string{"rename draft.txt to final.txt", "move notes.txt to archive"},
		},
		{
			Category: "file_operations",
			Pattern:  regexp.MustCompile(`(?:remove|delete|rm)\s+(?:the\s+)?file\s+(?:called\s+|named\s+)?(.+)`),
			Template: "rm {target}",
			Examples: []string{"delete the file called temp.txt"},
		},
		{
			Category: "file_operations",
			Pattern:  regexp.MustCompile(`(?:remove|delete|rm)\s+(?:the\s+)?(.+)`),
			Template: "rm -rf {target}",
			Examples: []string{"delete the old file"},
		},

		// Search
		{
			Category: "file_search",
			Pattern:  regexp.MustCompile(`(?:find|search\s+for|locate)\s+(?:files?\s+)?(?:named\s+|called\s+)?(.+)\s+in\s+(.+)`),
			Template: "find {path} {name}",
			Slots:    []string{"name", "path"},
			Examples: []string{"find notes.txt in documents"},
		},
		{
			Category: "file_search",
			Pattern:  regexp.MustCompile(`(?:find|search\s+for|locate)\s+(?:files?\s+)?(?:named\s+|called\s+)?(.+)`),
			Template: "find . {name}",
			Examples: []string{"find readme.md", "locate config.yaml"},
		},
		{
			Category: "file_search",
			Pattern:  regexp.MustCompile(`where\s+is\s+(?:the\s+)?(?:file\s+)?(.+)`),
			Template: "find . {name}",
			Examples: []string{"where is the file todo.txt"},
		},

		// Archives. The zip and compress verbs appear inside archive file
		// names ("backup.zip", "decompress"), so they only count at the
		// start of a word.
		{
			Category: "archives",
			Pattern:  regexp.MustCompile(`(?:^|\s)compress\s+(?:the\s+)?(?:directory\s+|folder\s+|file\s+)?(.+)\s+(?:into|to|as)\s+(.+)`),
			Template: "zip {dest} {source}",
			Slots:    []string{"source", "dest"},
			Examples: []string{"compress logs into logs.zip"},
		},
		{
			Category: "archives",
			Pattern:  regexp.MustCompile(`(?:^|\s)(?:zip|compress)\s+(?:up\s+)?(?:the\s+)?(?:directory\s+|folder\s+|file\s+)?(.+)`),
			Template: "zip {target}.zip {target}",
			Examples: []string{"compress old_logs"},
		},
		{
			Category: "archives",
			Pattern:  regexp.MustCompile(`(?:extract|unzip|decompress|unpack)\s+(?:the\s+)?(?:archive\s+)?(.+)\s+(?:into|to)\s+(.+)`),
			Template: "unzip {source} {dest}",
			Slots:    []string{"source", "dest"},
			Examples: []string{"extract backup.zip into restore"},
		},
		{
			Category: "archives",
			Pattern:  regexp.MustCompile(`(?:extract|unzip|decompress|unpack)\s+(?:the\s+)?(?:archive\s+)?(.+)`),
			Template: "unzip {target}",
			Examples: []string{"unpack release.tar.gz"},
		},

		// System state
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`(?:show|display|what'?s)\s+(?:the\s+)?(?:current\s+)?(?:working\s+)?directory`),
			Template: "pwd",
			Examples: []string{"show the current directory", "what's the working directory"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`where\s+am\s+i`),
			Template: "pwd",
			Examples: []string{"where am i"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`(?:show|list)\s+(?:running\s+)?processes`),
			Template: "ps aux",
			Examples: []string{"show running processes", "list processes"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`(?:what\s+)?processes\s+are\s+running`),
			Template: "ps aux",
			Examples: []string{"what processes are running"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`(?:show|display)\s+(?:system\s+)?(?:memory|ram)\s+usage`),
			Template: "free -h",
			Examples: []string{"show memory usage"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`(?:show|display)\s+disk\s+(?:space|usage)`),
			Template: "df -h",
			Examples: []string{"show disk usage"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`(?:(?:show|display)\s+)?(?:system\s+)?uptime`),
			Template: "uptime",
			Examples: []string{"show system uptime", "system uptime"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`who\s+(?:am\s+)?i`),
			Template: "whoami",
			Examples: []string{"who am i"},
		},
		{
			Category: "system_info",
			Pattern:  regexp.MustCompile(`what\s+(?:system|os)\s+am\s+i\s+(?:on|running)`),
			Template: "uname -a",
			Examples: []string{"what system am i on"},
		},

		// Meta
		{
			Category: "help_and_info",
			Pattern:  regexp.MustCompile(`(?:help|what\s+can\s+(?:i|you)\s+do|show\s+(?:me\s+)?(?:available\s+)?commands)`),
			Template: "help",
			Examples: []string{"what can you do"},
		},
		{
			Category: "help_and_info",
			Pattern:  regexp.MustCompile(`(?:show|display)\s+(?:command\s+)?history`),
			Template: "history",
			Examples: []string{"show command history"},
		},
		{
			Category: "help_and_info",
			Pattern:  regexp.MustCompile(`clear\s+(?:the\s+)?(?:screen|terminal)`),
			Template: "clear",
			Examples: []string{"clear the screen"},
		},

		// The cat fallback accepts nearly any "show <noun>" phrase, so it
		// must stay the last rule in the table.
		{
			Category: "file_operations",
			Pattern:  regexp.MustCompile(`(?:show|display|cat)\s+(?:the\s+)?(?:contents?\s+of\s+)?(?:file\s+)?(.+)`),
			Template: "cat {file}",
			Examples: []string{"display the report.txt"},
		},
	}
}
