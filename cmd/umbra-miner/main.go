// umbra-miner fetches block templates from a daemon, iterates nonces
// over the miner work blob and submits solved work.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/umbra-network/go-umbra/internal/block"
	"github.com/umbra-network/go-umbra/internal/config"
	"github.com/umbra-network/go-umbra/pkg/daemonapi"
)

var (
	flagConfig        string
	flagDaemonAddress string
	flagMinerAddress  string
	flagThreads       int
	flagDebug         bool
	flagLogFile       string
	flagNoFileLogging bool
)

func main() {
	root := &cobra.Command{
		Use:   "umbra-miner",
		Short: "Proof-of-work miner for the Umbra network",
		RunE:  run,
	}
	root.Flags().StringVarP(&flagConfig, "config", "c", "", "path to a YAML config file")
	root.Flags().StringVar(&flagDaemonAddress, "daemon-address", "", "daemon WebSocket JSON-RPC endpoint")
	root.Flags().StringVar(&flagMinerAddress, "miner-address", "", "address receiving block rewards")
	root.Flags().IntVar(&flagThreads, "threads", 0, "mining threads (0 = one per CPU)")
	root.Flags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
	root.Flags().StringVarP(&flagLogFile, "filename-log", "n", "umbra-miner.log", "log file name")
	root.Flags().BoolVarP(&flagNoFileLogging, "disable-file-logging", "f", false, "log to the terminal only")

	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func loadConfig() (*config.Miner, error) {
	cfg := config.DefaultMiner()
	if flagConfig != "" {
		loaded, err := config.LoadMiner(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	// Flags override the file.
	if flagDaemonAddress != "" {
		cfg.DaemonAddress = flagDaemonAddress
	}
	if flagMinerAddress != "" {
		cfg.MinerAddress = flagMinerAddress
	}
	if flagThreads > 0 {
		cfg.Threads = flagThreads
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	if !flagNoFileLogging && cfg.LogFile == "" {
		cfg.LogFile = flagLogFile
	}
	if flagNoFileLogging {
		cfg.LogFile = ""
	}
	return cfg, cfg.Validate()
}

func setupLogging(cfg *config.Miner) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := daemonapi.Connect(ctx, cfg.DaemonAddress)
	if err != nil {
		return err
	}
	defer client.Close()

	version, err := client.GetVersion(ctx)
	if err != nil {
		return err
	}
	logrus.Infof("connected to daemon %s (version %s)", cfg.DaemonAddress, version)

	newBlocks, err := client.OnNewBlock(ctx)
	if err != nil {
		return err
	}

	m := &miner{client: client, cfg: cfg}
	for {
		if err := m.refreshTemplate(ctx); err != nil {
			return err
		}
		// Mine the current template until a new block invalidates it or
		// a worker solves it.
		solved, err := m.mineRound(ctx, newBlocks)
		if err != nil {
			return err
		}
		if solved {
			logrus.Info("block found and submitted")
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

type miner struct {
	client     *daemonapi.Client
	cfg        *config.Miner
	work       *block.MinerWork
	difficulty uint64
	height     uint64
}

func (m *miner) refreshTemplate(ctx context.Context) error {
	template, err := m.client.GetBlockTemplate(ctx, m.cfg.MinerAddress)
	if err != nil {
		return err
	}
	work, err := block.ReadMinerWorkHex(template.Template)
	if err != nil {
		return err
	}
	m.work = work
	m.difficulty = template.Difficulty
	m.height = template.Height
	logrus.Debugf("new template: height %d, difficulty %d", m.height, m.difficulty)
	return nil
}

// mineRound runs one template across all worker threads. It returns once
// a solution is submitted, the template is obsoleted by a new block, or
// the context ends.
func (m *miner) mineRound(ctx context.Context, newBlocks <-chan json.RawMessage) (bool, error) {
	roundCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	// cancel must run before the wait or the workers never stop.
	defer wg.Wait()
	defer cancel()

	solutions := make(chan *block.MinerWork, 1)
	for thread := 0; thread < m.cfg.Threads; thread++ {
		work := *m.work
		work.SetThreadID16(uint16(thread))
		wg.Add(1)
		go func(w block.MinerWork) {
			defer wg.Done()
			m.worker(roundCtx, &w, solutions)
		}(work)
	}

	select {
	case <-roundCtx.Done():
		return false, nil
	case <-newBlocks:
		logrus.Debug("template obsoleted by a new block")
		return false, nil
	case solved := <-solutions:
		cancel()
		if err := m.client.SubmitBlock(ctx, solved); err != nil {
			logrus.Errorf("submitting block: %v", err)
			return false, nil
		}
		return true, nil
	}
}

func (m *miner) worker(ctx context.Context, work *block.MinerWork, solutions chan<- *block.MinerWork) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Keep the timestamp current; only 8 bytes of the cached
			// buffer are patched.
			work.SetTimestamp(uint64(time.Now().UnixMilli()))
		default:
			work.IncrementNonce()
			if block.CheckDifficulty(work.PowHash(), m.difficulty) {
				select {
				case solutions <- work:
				default:
				}
				return
			}
		}
	}
}
