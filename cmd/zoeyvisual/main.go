package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/capture"
	"github.com/zoeyai/zoeyvisual/pkg/codec"
	"github.com/zoeyai/zoeyvisual/pkg/config"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
	"github.com/zoeyai/zoeyvisual/pkg/remote"
	"github.com/zoeyai/zoeyvisual/pkg/render"
	"github.com/zoeyai/zoeyvisual/pkg/search"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
	"github.com/zoeyai/zoeyvisual/pkg/window"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		configFile  = flag.String("config", "", "配置文件 (.json/.yaml)，默认 ~/.zoey-visual/config.json")
		logLevel    = flag.String("log-level", "", "日志级别 (DEBUG/INFO/WARN/ERROR)")
		saveConfig  = flag.Bool("save", false, "保存当前配置")
		showVersion = flag.Bool("version", false, "显示版本信息")
		showHelp    = flag.Bool("help", false, "显示帮助信息")
	)
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}
	if *showHelp || flag.NArg() == 0 {
		printHelp()
		return
	}

	manager := config.GetDefaultManager()
	if *configFile != "" {
		manager = config.NewManagerWithFile(*configFile)
	}
	cfg, err := manager.Load()
	if err != nil {
		fmt.Printf("[WARN] 加载配置失败: %v\n", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	applyLogging(cfg)
	defer logger.Default().Close()

	if *saveConfig {
		if err := manager.Save(cfg); err != nil {
			fmt.Printf("[WARN] 保存配置失败: %v\n", err)
		} else {
			fmt.Printf("[INFO] 配置已保存到 %s\n", manager.GetConfigFile())
		}
	}

	if err := run(cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// applyLogging 按配置设置日志级别与日志文件
func applyLogging(cfg *config.Config) {
	log := logger.Default()
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := log.SetFile(true, cfg.LogFile); err != nil {
			fmt.Printf("[WARN] 打开日志文件失败: %v\n", err)
		}
	}
}

func run(cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "screens":
		return cmdScreens(args)
	case "windows":
		return cmdWindows(args)
	case "capture":
		return cmdCapture(cfg, args)
	case "parse":
		return cmdParse(cfg, args)
	case "find":
		return cmdFind(cfg, args)
	case "remote":
		return cmdRemote(cfg, args)
	}
	printHelp()
	return fmt.Errorf("未知命令: %s", cmd)
}

func cmdScreens(args []string) error {
	fs := flag.NewFlagSet("screens", flag.ExitOnError)
	openSettings := fs.Bool("open-settings", false, "缺少屏幕录制权限时打开系统设置")
	fs.Parse(args)

	desktop := capture.NewDesktop()
	reportScreenAccess(os.Stdout, capture.ScreenAccessInstructions(), *openSettings, capture.OpenScreenAccessSettings)
	for _, s := range desktop.Screens() {
		fmt.Println(s)
	}
	return nil
}

// reportScreenAccess 缺少权限时输出说明，open 为真时调用 opener 打开设置页
func reportScreenAccess(w io.Writer, instructions string, open bool, opener func()) {
	if instructions == "" {
		return
	}
	fmt.Fprintln(w, "[WARN] "+instructions)
	if open {
		opener()
		return
	}
	fmt.Fprintln(w, "使用 screens -open-settings 打开系统设置")
}

func cmdWindows(args []string) error {
	windows, err := window.NewLister().Windows(args...)
	if err != nil {
		return err
	}
	for _, w := range windows {
		fmt.Printf("%s  pid=%d owner=%s\n", w, w.Window().PID, w.Window().Owner)
	}
	return nil
}

func cmdCapture(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	rect := fs.String("rect", "", "区域 x,y,w,h 或 Visual 文本，默认全部显示器")
	screen := fs.Int("screen", -1, "显示器编号")
	grow := fs.Bool("grow", false, "按配置的边距扩展区域")
	cell := fs.String("cell", "", "只截取网格中的格子 rows.cols.row.col")
	out := fs.String("o", "", "输出文件")
	fs.Parse(args)

	desktop := capture.NewDesktop()
	target, err := resolveRegion(desktop, *rect, *screen)
	if err != nil {
		return err
	}
	if *cell != "" {
		if target, err = target.CellAt(*cell); err != nil {
			return err
		}
	}
	if *grow {
		target = target.Grow(cfg.Margin)
	}

	shot, err := target.Capture(desktop)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = fmt.Sprintf("capture-%s.%s", time.Now().Format("20060102-150405"), cfg.ImageFormat)
	}
	if err := codec.SaveImage(shot, *out, codec.NewStd()); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", shot, *out)
	return nil
}

func cmdParse(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("缺少 Visual 文本")
	}
	monitors := capture.NewDesktop()
	for _, text := range args {
		v, err := visual.Parse(text)
		if err != nil {
			return err
		}
		t := v.Target()
		fmt.Printf("%s\n  kind=%s target=%s", v, v.Kind(), t)
		if v.IsRectangle() {
			fmt.Printf(" area=%d grown=%s", v.Size(), v.Grow(cfg.Margin))
		}
		if v.IsOnScreen() {
			fmt.Printf(" screen=%d", v.ContainingScreenNumber(monitors))
		}
		fmt.Println()
	}
	return nil
}

func cmdFind(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	imagePath := fs.String("image", "", "要查找的图像文件")
	rect := fs.String("rect", "", "查找区域 x,y,w,h 或 Visual 文本，默认全部显示器")
	screen := fs.Int("screen", -1, "显示器编号")
	similarity := fs.Float64("similarity", cfg.Threshold, "相似度阈值")
	findType := fs.String("type", "one", "查找方式 one|any|all|best")
	annotate := fs.String("annotate", "", "将标注后的截图保存到文件")
	fontFile := fs.String("font", "", "标注字体文件")
	fs.Parse(args)

	if *imagePath == "" {
		return errors.New("缺少 -image")
	}
	img, err := codec.LoadImage(*imagePath, codec.NewStd())
	if err != nil {
		return err
	}
	pattern := visual.NewPattern(img).Similar(*similarity)

	desktop := capture.NewDesktop()
	where, err := resolveRegion(desktop, *rect, *screen)
	if err != nil {
		return err
	}

	ft, ok := visual.ParseFindType(*findType)
	if !ok {
		return fmt.Errorf("未知查找方式: %s", *findType)
	}

	finder := search.NewTemplateFinder(desktop, search.WithMaxResults(cfg.MaxResults))
	matches, err := where.FindBy(finder, pattern, ft)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Printf("%s  target=%s\n", m, m.Target())
	}

	if *annotate != "" && where.LastCapture() != nil {
		var opts []render.Option
		if *fontFile != "" {
			opts = append(opts, render.WithFontFile(*fontFile))
		}
		a, err := render.NewAnnotator(opts...)
		if err != nil {
			return err
		}
		out, err := a.Annotate(where.LastCapture(), matches...)
		if err != nil {
			return err
		}
		if err := codec.SaveImage(out, *annotate, codec.NewGocv()); err != nil {
			return err
		}
		fmt.Printf("标注图像: %s\n", *annotate)
	}
	return nil
}

func cmdRemote(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	addr := fs.String("addr", cfg.RemoteAddr, "远程地址")
	useWS := fs.Bool("ws", false, "使用 WebSocket 并发布本地显示器")
	timeout := fs.Duration("timeout", 5*time.Second, "连接超时")
	fs.Parse(args)

	if *addr == "" {
		return errors.New("缺少远程地址，请使用 -addr 或在配置中设置 remote_addr")
	}

	if *useWS {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		s, err := remote.DialWebSocket(ctx, *addr)
		if err != nil {
			return err
		}
		defer s.Close()
		for _, screen := range capture.NewDesktop().Screens() {
			if err := s.Publish(screen); err != nil {
				return err
			}
			fmt.Printf("已发布 %s\n", screen)
		}
		return nil
	}

	s, err := remote.DialGRPC(*addr)
	if err != nil {
		return err
	}
	defer s.Close()

	screen := s.Screen(0, geom.Rect{})
	deadline := time.Now().Add(*timeout)
	for time.Now().Before(deadline) && !screen.IsValid() {
		time.Sleep(100 * time.Millisecond)
	}
	fmt.Printf("%s valid=%v\n", s.Addr(), screen.IsValid())
	return nil
}

// resolveRegion 解析区域参数："x,y,w,h"、Visual 文本、显示器编号，默认全部显示器
func resolveRegion(desktop *capture.Desktop, rect string, screen int) (*visual.Visual, error) {
	switch {
	case rect != "" && visual.IsJSON(rect):
		v, err := visual.Parse(rect)
		if err != nil {
			return nil, err
		}
		return v.Region(), nil
	case rect != "":
		r, err := parseRect(rect)
		if err != nil {
			return nil, err
		}
		return visual.NewRegionFrom(r), nil
	case screen >= 0:
		return desktop.Screen(screen)
	}
	return visual.NewRegionFrom(geom.Bounds(desktop.Monitors())), nil
}

// parseRect 解析 "x,y,w,h"
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("区域格式应为 x,y,w,h: %q", s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Rect{}, fmt.Errorf("区域格式应为 x,y,w,h: %q", s)
		}
		n[i] = v
	}
	return geom.R(n[0], n[1], n[2], n[3]), nil
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("Zoey Visual v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("Zoey Visual - 屏幕实体定位工具")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  zoeyvisual [选项] <命令> [参数]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  -config string     配置文件 (.json/.yaml)")
	fmt.Println("  -log-level string  日志级别")
	fmt.Println("  -save              保存当前配置")
	fmt.Println("  -version           显示版本信息")
	fmt.Println("  -help              显示帮助信息")
	fmt.Println()
	fmt.Println("命令:")
	fmt.Println("  screens [-open-settings]         列出显示器")
	fmt.Println("  windows [过滤]                   列出窗口")
	fmt.Println("  capture -rect x,y,w,h -o file    截取区域")
	fmt.Println("  parse <文本>...                  解析 Visual 文本")
	fmt.Println("  find -image file [-type all]     在屏幕上查找图像")
	fmt.Println("  remote -addr host:port [-ws]     检查远程显示面")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  zoeyvisual capture -screen 0 -o screen.png")
	fmt.Println(`  zoeyvisual parse '["REGION", [10, 20, 30, 40]]'`)
	fmt.Println("  zoeyvisual find -image button.png -annotate found.png")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", config.GetDefaultManager().GetConfigFile())
}
