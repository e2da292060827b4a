package main

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/simonhull/photostamp/internal/index"
	"github.com/simonhull/photostamp/internal/server"
)

func NewServeCommand() *cobra.Command {
	var addr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve a photo directory's capture timestamps over HTTP.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			idx, err := index.Build(cmd.Context(), dir)
			if err != nil {
				return err
			}

			srv := server.New(idx)

			if watch {
				go func() {
					if err := watchDir(cmd, dir, srv); err != nil {
						klog.Errorf("watch failed: %v", err)
					}
				}()
			}

			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:3000", "host:port to bind to")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch the directory and rebuild the index on changes")

	return cmd
}

// watchDir rebuilds the index whenever files under dir change.
func watchDir(cmd *cobra.Command, dir string, srv *server.Server) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	klog.Infof("watching %s ...", dir)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				idx, err := index.Build(cmd.Context(), dir)
				if err != nil {
					klog.Errorf("rebuild failed: %v", err)
					continue
				}
				srv.SetIndex(idx)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
