package safety

// Options carries the global safety flags that gate destructive actions.
type Options struct {
	// DryRun previews actions without making changes; prompts auto-decline.
	DryRun bool
	// Yes assumes "yes" at prompts so commands can run non-interactively.
	Yes bool
	// Force overrides extra protections, e.g. restoring a backup that has
	// no integrity records.
	Force bool
}
