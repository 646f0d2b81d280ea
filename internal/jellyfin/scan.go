package jellyfin

import "context"

// ScanFolder triggers a scan of the library containing the given on-disk
// folder. When no library matches, the whole server is refreshed instead,
// matching what a manual "scan all libraries" would do.
func (c *Client) ScanFolder(ctx context.Context, folder string) error {
	lib, err := c.FindByFolder(ctx, folder)
	if err != nil {
		return err
	}
	if lib == nil {
		if c.log != nil {
			c.log.Info("no library matches folder, refreshing all", "folder", folder)
		}
		return c.RefreshAll(ctx)
	}
	if c.log != nil {
		c.log.Info("refreshing library", "library", lib.Name, "folder", folder)
	}
	return c.RefreshLibrary(ctx, lib.ItemID)
}
