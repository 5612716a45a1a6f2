package site

// pageTemplate is the Go html/template for the landing page. The strip is
// rendered server-side; the script only applies frames from /ws/carousel.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; font-family: system-ui, sans-serif; color: #1d1d1b; }
    .hero { padding: 48px 24px; max-width: 880px; margin: 0 auto; }
    .notice { display: none; background: #fff4d6; padding: 8px 16px; text-align: center; }
    .viewport { overflow: hidden; position: relative; width: 100%; }
    .strip { display: flex; gap: {{.GapPx}}px; will-change: transform; }
    .strip.animated { transition: transform {{.TransitionMS}}ms ease; }
    .card { flex: 0 0 {{.CardWidthPx}}px; cursor: pointer; }
    .card img { width: 100%; height: 220px; object-fit: cover; display: block; }
    .card .area { padding: 8px 0; font-weight: 600; }
    .controls { display: flex; justify-content: center; gap: 16px; padding: 16px; }
    .modal { display: none; position: fixed; inset: 0; background: rgba(0,0,0,.85); color: #fff; overflow: auto; }
    .modal.open { display: block; }
    .modal img { max-width: 90vw; display: block; margin: 16px auto; }
  </style>
</head>
<body>
  <div class="notice" id="notice"></div>
  <section class="hero">{{.Intro}}</section>
  <section class="viewport" id="viewport">
    <div class="strip" id="strip" style="transform: translateX({{.OffsetPx}}px)">
      {{range .Strip.Slides}}<div class="card" data-slot="{{.Slot}}" data-index="{{.LogicalIndex}}">
        <img src="{{.Card.ImageURL}}" alt="{{.Card.Area}}" loading="lazy">
        <div class="area">{{.Card.Area}}</div>
      </div>{{end}}
    </div>
  </section>
  <div class="controls">
    <button id="prev" aria-label="Previous project">&larr;</button>
    <button id="next" aria-label="Next project">&rarr;</button>
  </div>
  <div class="modal" id="gallery" role="dialog" aria-modal="true"></div>
  <script>
  (function () {
    var strip = document.getElementById('strip');
    var viewport = document.getElementById('viewport');
    var gallery = document.getElementById('gallery');
    var notice = document.getElementById('notice');
    var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws/carousel');
    function send(msg) { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); }
    function card(slide) {
      var el = document.createElement('div');
      el.className = 'card';
      el.dataset.slot = slide.slot;
      el.dataset.index = slide.logical_index;
      var img = document.createElement('img');
      img.src = slide.card.imageUrl; img.alt = slide.card.area; img.loading = 'lazy';
      var area = document.createElement('div');
      area.className = 'area'; area.textContent = slide.card.area;
      el.appendChild(img); el.appendChild(area);
      return el;
    }
    ws.onopen = function () { send({type: 'resize', width: viewport.clientWidth}); };
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === 'render') {
        strip.replaceChildren.apply(strip, (msg.strip.slides || []).map(card));
      } else if (msg.type === 'position') {
        strip.classList.toggle('animated', msg.position.animated);
        strip.style.transform = 'translateX(' + msg.position.offset_px + 'px)';
      } else if (msg.type === 'selected') {
        gallery.replaceChildren();
        (msg.card.photos || []).forEach(function (p) {
          var img = document.createElement('img'); img.src = p.url; img.alt = p.title;
          gallery.appendChild(img);
        });
        gallery.classList.add('open');
      } else if (msg.type === 'notice') {
        notice.textContent = msg.message; notice.style.display = 'block';
        setTimeout(function () { notice.style.display = 'none'; }, 5000);
      }
    };
    document.getElementById('prev').onclick = function () { send({type: 'prev'}); };
    document.getElementById('next').onclick = function () { send({type: 'next'}); };
    strip.onclick = function (ev) {
      var el = ev.target.closest('.card');
      if (el) send({type: 'select', slot: Number(el.dataset.slot)});
    };
    gallery.onclick = function () { gallery.classList.remove('open'); };
    window.addEventListener('resize', function () { send({type: 'resize', width: viewport.clientWidth}); });
  })();
  </script>
</body>
</html>
`

// defaultIntro is shown when no intro file is configured.
const defaultIntro = `# Architecture & interiors

We design homes, studios and workplaces from the first sketch to the last
detail. Browse a selection of recent projects below.
`
